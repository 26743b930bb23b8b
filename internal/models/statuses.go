package models

type UserRole string
type UserStatus string
type VerificationStatus string
type PropertyType string
type PropertyStatus string
type ReviewStatus string
type ContactStatus string
type SubscriptionStatus string
type PaymentStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAgent UserRole = "agent"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	VerificationPending   VerificationStatus = "pending"
	VerificationApproved  VerificationStatus = "approved"
	VerificationRejected  VerificationStatus = "rejected"
	VerificationSuspended VerificationStatus = "suspended"

	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"

	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusActive   PropertyStatus = "active"
	PropertyStatusSold     PropertyStatus = "sold"
	PropertyStatusRejected PropertyStatus = "rejected"

	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"

	ContactStatusNew       ContactStatus = "new"
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusQualified ContactStatus = "qualified"
	ContactStatusConverted ContactStatus = "converted"
	ContactStatusArchived  ContactStatus = "archived"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ValidPropertyTypes is the closed set accepted from filter input.
var ValidPropertyTypes = map[string]bool{
	string(PropertyTypeHouse):      true,
	string(PropertyTypeApartment):  true,
	string(PropertyTypeCondo):      true,
	string(PropertyTypeLand):       true,
	string(PropertyTypeCommercial): true,
}

// ValidPropertyStatuses is the closed set accepted from filter input.
var ValidPropertyStatuses = map[string]bool{
	string(PropertyStatusPending):  true,
	string(PropertyStatusActive):   true,
	string(PropertyStatusSold):     true,
	string(PropertyStatusRejected): true,
}

// ValidVerificationStatuses is the closed set accepted from filter input.
var ValidVerificationStatuses = map[string]bool{
	string(VerificationPending):   true,
	string(VerificationApproved):  true,
	string(VerificationRejected):  true,
	string(VerificationSuspended): true,
}

// ValidReviewStatuses is the closed set accepted from filter input.
var ValidReviewStatuses = map[string]bool{
	string(ReviewStatusPending):  true,
	string(ReviewStatusApproved): true,
	string(ReviewStatusRejected): true,
}

// ValidContactStatuses is the closed set accepted from filter input.
var ValidContactStatuses = map[string]bool{
	string(ContactStatusNew):       true,
	string(ContactStatusContacted): true,
	string(ContactStatusQualified): true,
	string(ContactStatusConverted): true,
	string(ContactStatusArchived):  true,
}

// ValidPaymentStatuses is the closed set accepted from filter input.
var ValidPaymentStatuses = map[string]bool{
	string(PaymentStatusPending):  true,
	string(PaymentStatusPaid):     true,
	string(PaymentStatusFailed):   true,
	string(PaymentStatusRefunded): true,
}
