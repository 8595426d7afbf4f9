package natsdomain

// subjects for nats

// .js. - jetstream
var SubjectsJetStream = [...]string{"deposits.js.address_created"}

// .core. - nats core
var Subjects = [...]string{"currencies.core.create_address", "currencies.core.ping"}

// log collector subjects, one per log stream
const SubjLogsPrefix = "logs."

type SubjType uint8
type SubjJsType uint8

// nats core subjects
const (
	SubjCreateAddress SubjType = iota
	SubjPing
)

// nats jetstream subjects
const (
	SubjJsAddressCreated SubjJsType = iota
)

const (
	DepositsStream = "deposits"

	// queue group for signer workers
	SignerQueue = "signer_workers"
)

func (s SubjType) String() string {
	return Subjects[s]
}

func (s SubjJsType) String() string {
	return SubjectsJetStream[s]
}
