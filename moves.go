package gocube

// Predefined moves for the six outer layers.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	engine.Enqueue(gocube.R)
//	engine.Enqueue(gocube.RPrime)
var (
	// Up layer (y = 1)
	U      = Move{Axis: AxisY, Layer: 1, Clockwise: true}
	UPrime = Move{Axis: AxisY, Layer: 1, Clockwise: false}

	// Down layer (y = -1)
	D      = Move{Axis: AxisY, Layer: -1, Clockwise: true}
	DPrime = Move{Axis: AxisY, Layer: -1, Clockwise: false}

	// Left layer (x = -1)
	L      = Move{Axis: AxisX, Layer: -1, Clockwise: true}
	LPrime = Move{Axis: AxisX, Layer: -1, Clockwise: false}

	// Right layer (x = 1)
	R      = Move{Axis: AxisX, Layer: 1, Clockwise: true}
	RPrime = Move{Axis: AxisX, Layer: 1, Clockwise: false}

	// Front layer (z = 1)
	F      = Move{Axis: AxisZ, Layer: 1, Clockwise: true}
	FPrime = Move{Axis: AxisZ, Layer: 1, Clockwise: false}

	// Back layer (z = -1)
	B      = Move{Axis: AxisZ, Layer: -1, Clockwise: true}
	BPrime = Move{Axis: AxisZ, Layer: -1, Clockwise: false}
)

// faceMoves maps a face letter to its clockwise move.
var faceMoves = map[string]Move{
	"U": U,
	"D": D,
	"L": L,
	"R": R,
	"F": F,
	"B": B,
}

// SexyMove is R U R' U'. Six repetitions return the cube to its start.
var SexyMove = []Move{R, U, RPrime, UPrime}
