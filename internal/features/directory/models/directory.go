package models

// Channel is a community channel as shown in the dashboard selectors.
type Channel struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Tipo     int    `json:"tipo"`
	Position int    `json:"position"`
}

// Cargo is a community role. Managed roles (bot or integration owned) are
// listed but cannot be granted to members, which matters for requirement
// role lists.
type Cargo struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Color    int    `json:"color"`
	Position int    `json:"position"`
	Managed  bool   `json:"managed"`
}
