package natsdomain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const DefaultRequestTimeout = 7 * time.Second

// error replies are prefixed with "error:"
const ErrPrefix = "error:"

var ErrEmptyResponse = errors.New("nats: empty response")

// jetstream publish with msgId
func (ns *Ns) JsPublishMsgId(ctx context.Context, subj string, jsonMsg []byte, msgId string) error {
	_, err := ns.Js.Publish(ctx, subj, jsonMsg, jetstream.WithMsgID(msgId))
	if err != nil {
		return err
	}
	return nil
}

// nats core request, single attempt.
//
// requests are not retried: the receiver may not be idempotent (create_address)
func (ns *Ns) ReqAndRecv(ctx context.Context, subject SubjType, jsonMsg []byte) ([]byte, error) {
	timeout := ns.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	response, err := ns.Nc.RequestWithContext(ctx, subject.String(), jsonMsg)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", subject.String(), err)
	}

	if response == nil || len(response.Data) == 0 {
		return nil, ErrEmptyResponse
	}

	return response.Data, nil
}

// checks if there is an error in the response. if there is, it returns true and the error message
func IsError(data []byte) (bool, string) {
	if len(data) < len(ErrPrefix) {
		return false, ""
	}

	if string(data[0:len(ErrPrefix)]) == ErrPrefix {
		return true, strings.TrimSpace(string(data[len(ErrPrefix):]))
	}
	return false, ""
}

// formats error reply
func ErrorReply(err error) []byte {
	return []byte(ErrPrefix + " " + err.Error())
}

func Ping(nc *nats.Conn, timeout time.Duration) error {
	msg, err := nc.Request(SubjPing.String(), []byte("ping"), timeout)
	if err != nil {
		return err
	}
	if string(msg.Data) != "pong" {
		return fmt.Errorf("nats: wrong ping response: %q", string(msg.Data))
	}
	return nil
}

// for nats jetstream
func NewMsgId(relation string, action ActionType) string {
	return relation + "_" + string(action)
}
