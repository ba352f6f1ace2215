package model

// Observation is a single dated price sample.
type Observation struct {
	Date  Date    `json:"date"`
	Price float64 `json:"price"`
}

// Tick is an axis label anchor.
type Tick struct {
	Date  Date   `json:"date"`
	Label string `json:"label"`
}

// DateRange is an inclusive calendar range, typically a zoom selection.
type DateRange struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}
