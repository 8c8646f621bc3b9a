package notification

type Filter struct {
	Limit      *int
	UnreadOnly *bool
}
