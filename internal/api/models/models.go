package models

// Error is the wire shape of every non-2xx response
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Status is the wire shape of operation acknowledgements
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Stats reports store-level counters
type Stats struct {
	Nodes int `json:"nodes"`
}
