// postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
package pgerror

const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	LockNotAvailable    = "55P03"
	QueryCanceled       = "57014"
)
