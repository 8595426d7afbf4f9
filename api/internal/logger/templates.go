package logger

func (l Logger) TemplProvisionErr(message, errorId, uid, currency, blockchainKey string, err error) string {
	l.Error(message, LS_PROVISIONING, true, "uid", uid, "currency", currency, "blockchain_key", blockchainKey, "error_id", errorId, "error", errText(err))
	return errorId
}

func (l Logger) TemplProvisionInfo(message, uid, currency, blockchainKey, address string) {
	l.Info(message, LS_PROVISIONING, true, "uid", uid, "currency", currency, "blockchain_key", blockchainKey, "address", address)
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, LS_FATAL, true, "error", errText(err), "ipv4", ipv4)
}

func (l Logger) TemplNatsError(message, natsUrl string, err error) {
	l.Error(message, LS_NATS, true, "nats_url", natsUrl, "error", errText(err))
}

func (l Logger) TemplNatsInfo(message, natsUrl string) {
	l.Info(message, LS_NATS, true, "nats_url", natsUrl, "error", NA)
}

func (l Logger) TemplOutboxErr(message string, eventId uint, err error) {
	l.Error(message, LS_OUTBOX, true, "event_id", eventId, "error", errText(err))
}

func (l Logger) TemplAdminErr(message, errorId, uri string, err error) string {
	l.Error(message, LS_ADMIN, true, "uri", uri, "error_id", errorId, "error", errText(err))
	return errorId
}

func (l Logger) TemplAdminInfo(message string, networkId uint, currency, blockchainKey string) {
	l.Info(message, LS_ADMIN, true, "network_id", networkId, "currency", currency, "blockchain_key", blockchainKey)
}

func errText(err error) string {
	if err == nil {
		return NA
	}
	return err.Error()
}
