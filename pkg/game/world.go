package game

// Room names used by the built-in world.
const (
	StartRoom = "Start Room"
	NorthRoom = "North Room"
)

type room struct {
	description string
	exits       map[string]string
}

var rooms = map[string]room{
	StartRoom: {
		description: "A plain room with a door to the north.",
		exits:       map[string]string{"north": NorthRoom},
	},
	NorthRoom: {
		description: "A colder room. The way back is south.",
		exits:       map[string]string{"south": StartRoom},
	},
}
