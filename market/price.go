package market

// Price is a quoted value in currency units. A simulated price is free to
// fall to zero or below; that is how insolvency shows up downstream.
type Price = float64

// Point is one entry of a price series, indexed from the oldest sample.
type Point struct {
	Index int   `json:"index"`
	Price Price `json:"price"`
}
