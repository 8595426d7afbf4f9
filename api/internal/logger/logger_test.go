package logger

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAnyToStr(t *testing.T) {

	tests := []struct {
		T    any
		TStr string
	}{
		{10, "10"},
		{-10, "-10"},
		{true, "true"},
		{false, "false"},
		{"test", "test"},
		{"", ""},
		{nil, "<nil>"},
		{struct{}{}, "{}"},

		{struct {
			Z string
			F int
		}{"test", 10}, "{test 10}"},

		{[]int{1, 2, 3}, "[1 2 3]"},
	}

	for _, x := range tests {
		res := AnyToStr(x.T)
		if x.TStr != res {
			t.Log(x.T)
			t.Fatalf("failed: %s != %s", x.TStr, res)
		}

	}

}

type published struct {
	subj string
	data []byte
}

type chanSink chan published

func (c chanSink) Publish(subj string, data []byte) error {
	c <- published{subj, data}
	return nil
}

func TestFormatLog(t *testing.T) {
	b, err := formatLog(LL_ERROR, "boom", 0, "file.go", 10, "uid", "u1", "attempt", 2)
	if err != nil {
		t.Fatal(err)
	}

	var msg LogMessage
	if err := json.Unmarshal(b, &msg); err != nil {
		t.Fatal(err)
	}

	if msg.Message != "boom" || msg.LogLevel != "ERROR" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Args["uid"] != "u1" || msg.Args["attempt"] != float64(2) {
		t.Fatalf("unexpected args: %v", msg.Args)
	}
	if msg.Source.File != "file.go" || msg.Source.Line != 10 {
		t.Fatalf("unexpected source: %+v", msg.Source)
	}

	if _, err := formatLog(LL_INFO, "x", 0, "f", 1, 1, "v"); err == nil {
		t.Fatal("non-string key must fail")
	}
	if _, err := formatLog(LL_INFO, "x", 0, "f", 1, "k"); err == nil {
		t.Fatal("odd args must fail")
	}
}

func TestLevelAndStreamNames(t *testing.T) {
	levels := map[LogLevel]string{LL_ERROR: "ERROR", LL_FATAL: "FATAL", LL_INFO: "INFO", LL_DEBUG: "DEBUG"}
	for ll, want := range levels {
		if ll.ToString() != want {
			t.Fatalf("%d: %s != %s", ll, ll.ToString(), want)
		}
	}

	if LS_PROVISIONING.Subject() != "logs.provisioning" || LS_OUTBOX.Subject() != "logs.outbox" {
		t.Fatal("unexpected subjects")
	}
}

func TestTemplProvisionErrShips(t *testing.T) {
	sink := make(chanSink, 1)
	l := Logger{}.WithSink(sink)

	errorId := GenErrorId()
	got := l.TemplProvisionErr("backend failed", errorId, "u1", "eth", "erc20", errors.New("signer down"))
	if got != errorId {
		t.Fatalf("error id %s != %s", got, errorId)
	}

	select {
	case p := <-sink:
		if p.subj != "logs.provisioning" {
			t.Fatalf("subject = %s", p.subj)
		}
		var msg LogMessage
		if err := json.Unmarshal(p.data, &msg); err != nil {
			t.Fatal(err)
		}
		for k, want := range map[string]string{"uid": "u1", "currency": "eth", "blockchain_key": "erc20", "error_id": errorId, "error": "signer down"} {
			if msg.Args[k] != want {
				t.Fatalf("%s = %v, want %s", k, msg.Args[k], want)
			}
		}
		if !strings.HasSuffix(msg.Source.File, "logger_test.go") {
			t.Fatalf("caller not resolved to test file: %s", msg.Source.File)
		}
	case <-time.After(time.Second):
		t.Fatal("log not shipped")
	}
}

func TestFatalWithoutSink(t *testing.T) {
	// must not panic without a sink
	Logger{}.Fatal("no sink", LS_FATAL, false)
}
