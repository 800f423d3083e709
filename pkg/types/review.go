package types

import "time"

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

// Review statuses.
const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
	ReviewSpam     ReviewStatus = "spam"
)

// Valid reports whether s is a known review status.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected, ReviewSpam:
		return true
	}
	return false
}

// Review is a customer's rating of a product. ProductName and CustomerName
// are joined by the server.
type Review struct {
	ID           string       `json:"id"`
	ProductID    string       `json:"productId"`
	ProductName  string       `json:"productName"`
	CustomerID   string       `json:"customerId"`
	CustomerName string       `json:"customerName"`
	Rating       int64        `json:"rating"`
	Comment      string       `json:"comment"`
	Status       ReviewStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}
