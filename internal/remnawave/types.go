package remnawave

import "time"

// createUserRequest is the body of POST /api/users
type createUserRequest struct {
	Username string    `json:"username"`
	Status   string    `json:"status"`
	ExpireAt time.Time `json:"expireAt"`
}

// updateUserRequest is the body of PATCH /api/users
type updateUserRequest struct {
	UUID     string    `json:"uuid"`
	ExpireAt time.Time `json:"expireAt"`
}

// userResponse is the panel's user representation, as returned inside the
// response envelope by every user endpoint
type userResponse struct {
	UUID            string `json:"uuid"`
	Username        string `json:"username"`
	ShortUUID       string `json:"shortUuid"`
	SubscriptionURL string `json:"subscriptionUrl"`
	Status          string `json:"status"`
}

// userEnvelope wraps userResponse; the panel nests all payloads under
// "response"
type userEnvelope struct {
	Response userResponse `json:"response"`
}
