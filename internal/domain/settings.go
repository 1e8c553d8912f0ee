package domain

import "time"

// Settings is the deployment-wide configuration record written exactly
// once by initialize: the administrator account and the fungible token
// every rental is paid in.
type Settings struct {
	Admin        string    `json:"admin"`
	PaymentToken string    `json:"payment_token"`
	CreatedOn    time.Time `json:"created_on"`
}
