package bindings

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"
)

// ErrEventMismatch is returned when a log does not carry the requested event
var ErrEventMismatch = errors.New("event signature mismatch")

// contract wraps a parsed ABI with the helpers shared by every binding
type contract struct {
	abi abi.ABI
}

func mustParse(meta *bind.MetaData) contract {
	parsed, err := meta.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return contract{abi: *parsed}
}

// ABI returns the parsed contract ABI
func (c contract) ABI() abi.ABI {
	return c.abi
}

// GetEventID returns the event signature hash for a given event name
func (c contract) GetEventID(eventName string) (common.Hash, error) {
	event, exists := c.abi.Events[eventName]
	if !exists {
		return common.Hash{}, fmt.Errorf("event %s not found", eventName)
	}
	return event.ID, nil
}

func (c contract) mustEventID(eventName string) common.Hash {
	id, err := c.GetEventID(eventName)
	if err != nil {
		panic(err)
	}
	return id
}

// unpackEvent decodes data and indexed topics of log into out
func (c contract) unpackEvent(out any, event string, log *types.Log) error {
	ev, ok := c.abi.Events[event]
	if !ok {
		return fmt.Errorf("event %s not found", event)
	}
	if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
		return ErrEventMismatch
	}
	if len(log.Data) > 0 {
		if err := c.abi.UnpackIntoInterface(out, event, log.Data); err != nil {
			return err
		}
	}
	indexed := lo.Filter(ev.Inputs, func(arg abi.Argument, _ int) bool { return arg.Indexed })
	if len(log.Topics)-1 != len(indexed) {
		return fmt.Errorf("%s: expected %d indexed topics, got %d", event, len(indexed), len(log.Topics)-1)
	}
	return abi.ParseTopics(out, indexed, log.Topics[1:])
}

// pack packs method arguments, returning a wrapped error naming the method
func (c contract) pack(method string, args ...any) ([]byte, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return data, nil
}

// unpackOne decodes a single return value of method
func unpackOne[T any](c contract, method string, output []byte) (T, error) {
	var zero T
	values, err := c.abi.Unpack(method, output)
	if err != nil {
		return zero, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return zero, fmt.Errorf("unpack %s: expected 1 value, got %d", method, len(values))
	}
	v, ok := values[0].(T)
	if !ok {
		return zero, fmt.Errorf("unpack %s: unexpected type %T", method, values[0])
	}
	return v, nil
}
