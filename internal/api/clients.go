package api

// Clients bundles the three call groups over one shared base client.
// The composition root builds it once at startup and hands it to each
// store's constructor; nothing here is a mutable global.
type Clients struct {
	Auth    *Auth
	Profile *Profile
	Query   *Query
}

// NewClients wires the call groups to a base client.
func NewClients(c *Client) *Clients {
	return &Clients{
		Auth:    &Auth{c: c},
		Profile: &Profile{c: c},
		Query:   &Query{c: c},
	}
}
