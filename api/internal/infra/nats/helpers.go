package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"paygate/pkg/nats/natsdomain"
	"paygate/pkg/utils"
)

// asks the remote signer for a new address, single attempt
func (n *NatsInfra) ReqCreateAddress(ctx context.Context, req natsdomain.ReqCreateAddress) (*natsdomain.ResCreateAddress, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	resp, err := n.ReqAndRecv(ctx, natsdomain.SubjCreateAddress, data)
	if err != nil {
		return nil, err
	}

	return ParseCreateAddress(resp)
}

func ParseCreateAddress(resp []byte) (*natsdomain.ResCreateAddress, error) {
	if isErr, errmsg := natsdomain.IsError(resp); isErr {
		return nil, errors.New("signer: " + errmsg)
	}

	res, err := utils.Unmarshal[natsdomain.ResCreateAddress](resp)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if !res.NotReady && res.Address == "" {
		return nil, errors.New("signer: empty address")
	}
	return res, nil
}

// JetStream publish of an outbox event, deduplicated by msgId
func (n *NatsInfra) PublishEvent(ctx context.Context, subj natsdomain.SubjJsType, payload []byte, msgId string) error {
	return n.JsPublishMsgId(ctx, subj.String(), payload, msgId)
}
