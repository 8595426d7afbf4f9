package natsdomain

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func TestIsError(t *testing.T) {
	tests := []struct {
		data    []byte
		isValid bool
	}{
		{
			data:    []byte(""), // null string
			isValid: false,
		},
		{
			data:    []byte("error"), // != 'error:'
			isValid: false,
		},
		{
			data:    []byte("error:\t\t"),
			isValid: true,
		}, {
			data:    []byte("error:"),
			isValid: true,
		}, {
			data:    []byte("error: " + gofakeit.LetterN(100)),
			isValid: true,
		},
		{
			data:    []byte(`{"Address":"0x1"}`),
			isValid: false,
		},
	}

	for _, i := range tests {
		is, _ := IsError(i.data)
		if i.isValid != is {
			t.Fatalf("i.isValid != is: %s", string(i.data))
		}
	}

	for range 1000 {
		is, _ := IsError([]byte("error: " + gofakeit.LetterN(1000<<1)))
		if !is {
			t.Fatal("!is")
		}
	}
}

func TestErrorReply(t *testing.T) {
	is, msg := IsError(ErrorReply(errors.New("unsupported gateway")))
	if !is || msg != "unsupported gateway" {
		t.Fatalf("round trip failed: %v %q", is, msg)
	}
}

func TestSubjects(t *testing.T) {
	if SubjCreateAddress.String() != "currencies.core.create_address" || SubjPing.String() != "currencies.core.ping" {
		t.Fatal("core subjects")
	}
	if SubjJsAddressCreated.String() != "deposits.js.address_created" {
		t.Fatal("jetstream subjects")
	}
	if NewMsgId("payment_address_7", MsgActionCreated) != "payment_address_7_created" {
		t.Fatal("msg id")
	}
}
