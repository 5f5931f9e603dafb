package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEvent   = errors.New("unknown event")
	ErrInvalidPayload = errors.New("invalid payload")
)

type validator interface {
	validate() error
}

type decodeFunc func(Codec, Envelope) (any, error)

func decodeAs[T any](c Codec, env Envelope) (any, error) {
	out, err := DecodePayload[T](c, env)
	if err != nil {
		return nil, err
	}
	if v, ok := any(out).(validator); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// decodeOptional accepts a missing payload as the zero value.
func decodeOptional[T any](c Codec, env Envelope) (any, error) {
	// "null" in JSON, 0xc0 (nil) in MessagePack.
	if len(env.P) == 0 || string(env.P) == "null" || (len(env.P) == 1 && env.P[0] == 0xc0) {
		var zero T
		return zero, nil
	}
	return DecodePayload[T](c, env)
}

var inbound = map[string]decodeFunc{
	MsgPlayerJoin:   decodeAs[PlayerJoin],
	MsgPlayerMove:   decodeAs[PlayerMove],
	MsgCollectTreat: decodeAs[CollectTreat],
	MsgCreateRoom:   decodeAs[CreateRoom],
	MsgJoinRoom:     decodeAs[JoinRoom],
	MsgStartGame:    decodeAs[StartGame],
	MsgResetGame:    decodeOptional[ResetGame],
}

// DecodeInbound reads one client frame into its event name and typed payload.
func DecodeInbound(c Codec, frame []byte) (string, any, error) {
	env, err := c.DecodeEnvelope(frame)
	if err != nil {
		return "", nil, err
	}
	decode, ok := inbound[env.T]
	if !ok {
		return env.T, nil, fmt.Errorf("%w %q", ErrUnknownEvent, env.T)
	}
	payload, err := decode(c, env)
	if err != nil {
		return env.T, nil, fmt.Errorf("decode %s: %w", env.T, err)
	}
	return env.T, payload, nil
}
