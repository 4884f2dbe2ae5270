package yearset

// Shared fixtures: a ten event catalog with uniform frequencies and a
// hand-checked sampling record spanning ten years.

func demoCatalog() Catalog {
	return Catalog{
		Impacts:     []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		Frequencies: []float64{0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2},
	}
}

func demoRecord() Record {
	return Record{
		{0, 1, 2},
		{2, 3},
		{3, 4},
		{9, 8, 6},
		{},
		{9, 8, 7},
		{5, 7},
		{},
		{9, 5, 4},
		{9, 8},
	}
}

// demoSums are the per year aggregates of demoRecord over demoCatalog,
// mean 129 against an expected annual impact of 110.
var demoSums = []float64{60, 70, 90, 260, 0, 270, 140, 0, 210, 190}
