package model

type Feedback struct {
	OrderID   int64
	Message   string
	Timestamp string
}
