package catalog

import (
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

func all() []tournamenttypes.SpeedClass {
	return []tournamenttypes.SpeedClass{
		tournamenttypes.SpeedClass50cc,
		tournamenttypes.SpeedClass100cc,
		tournamenttypes.SpeedClass150cc,
		tournamenttypes.SpeedClass200cc,
		tournamenttypes.SpeedClassMirror,
	}
}

func engineOnly() []tournamenttypes.SpeedClass {
	// Courses we only run at the higher engine classes; the community skips
	// them for 50/100cc events.
	return []tournamenttypes.SpeedClass{
		tournamenttypes.SpeedClass150cc,
		tournamenttypes.SpeedClass200cc,
		tournamenttypes.SpeedClassMirror,
	}
}

// courses is the built-in course table. IDs are stable: they are persisted on
// tournaments and must never be renumbered.
var courses = []tournamenttypes.Course{
	{ID: 1, Name: "Mario Kart Stadium", Cup: "Mushroom", Origin: "MK8", Classes: all()},
	{ID: 2, Name: "Water Park", Cup: "Mushroom", Origin: "MK8", Classes: all()},
	{ID: 3, Name: "Sweet Sweet Canyon", Cup: "Mushroom", Origin: "MK8", Classes: all()},
	{ID: 4, Name: "Thwomp Ruins", Cup: "Mushroom", Origin: "MK8", Classes: all()},
	{ID: 5, Name: "Mario Circuit", Cup: "Flower", Origin: "MK8", Classes: all()},
	{ID: 6, Name: "Toad Harbor", Cup: "Flower", Origin: "MK8", Classes: all()},
	{ID: 7, Name: "Twisted Mansion", Cup: "Flower", Origin: "MK8", Classes: all()},
	{ID: 8, Name: "Shy Guy Falls", Cup: "Flower", Origin: "MK8", Classes: all()},
	{ID: 9, Name: "Sunshine Airport", Cup: "Star", Origin: "MK8", Classes: all()},
	{ID: 10, Name: "Dolphin Shoals", Cup: "Star", Origin: "MK8", Classes: all()},
	{ID: 11, Name: "Electrodrome", Cup: "Star", Origin: "MK8", Classes: all()},
	{ID: 12, Name: "Mount Wario", Cup: "Star", Origin: "MK8", Classes: all()},
	{ID: 13, Name: "Cloudtop Cruise", Cup: "Special", Origin: "MK8", Classes: all()},
	{ID: 14, Name: "Bone-Dry Dunes", Cup: "Special", Origin: "MK8", Classes: all()},
	{ID: 15, Name: "Bowser's Castle", Cup: "Special", Origin: "MK8", Classes: engineOnly()},
	{ID: 16, Name: "Rainbow Road", Cup: "Special", Origin: "MK8", Classes: engineOnly()},
	{ID: 17, Name: "Moo Moo Meadows", Cup: "Shell", Origin: "Wii", Classes: all()},
	{ID: 18, Name: "Mario Circuit GBA", Cup: "Shell", Origin: "GBA", Classes: all()},
	{ID: 19, Name: "Cheep Cheep Beach", Cup: "Shell", Origin: "DS", Classes: all()},
	{ID: 20, Name: "Toad's Turnpike", Cup: "Shell", Origin: "N64", Classes: all()},
	{ID: 21, Name: "Dry Dry Desert", Cup: "Banana", Origin: "GCN", Classes: all()},
	{ID: 22, Name: "Donut Plains 3", Cup: "Banana", Origin: "SNES", Classes: all()},
	{ID: 23, Name: "Royal Raceway", Cup: "Banana", Origin: "N64", Classes: all()},
	{ID: 24, Name: "DK Jungle", Cup: "Banana", Origin: "3DS", Classes: all()},
	{ID: 25, Name: "Wario Stadium", Cup: "Leaf", Origin: "DS", Classes: all()},
	{ID: 26, Name: "Sherbet Land", Cup: "Leaf", Origin: "GCN", Classes: all()},
	{ID: 27, Name: "Music Park", Cup: "Leaf", Origin: "3DS", Classes: all()},
	{ID: 28, Name: "Yoshi Valley", Cup: "Leaf", Origin: "N64", Classes: all()},
	{ID: 29, Name: "Tick-Tock Clock", Cup: "Lightning", Origin: "DS", Classes: all()},
	{ID: 30, Name: "Piranha Plant Slide", Cup: "Lightning", Origin: "3DS", Classes: all()},
	{ID: 31, Name: "Grumble Volcano", Cup: "Lightning", Origin: "Wii", Classes: engineOnly()},
	{ID: 32, Name: "Rainbow Road N64", Cup: "Lightning", Origin: "N64", Classes: engineOnly()},
	{ID: 33, Name: "Excitebike Arena", Cup: "Egg", Origin: "MK8", Classes: all()},
	{ID: 34, Name: "Dragon Driftway", Cup: "Egg", Origin: "MK8", Classes: all()},
	{ID: 35, Name: "Mute City", Cup: "Egg", Origin: "MK8", Classes: engineOnly()},
	{ID: 36, Name: "Baby Park", Cup: "Crossing", Origin: "GCN", Classes: all()},
	{ID: 37, Name: "Cheese Land", Cup: "Crossing", Origin: "GBA", Classes: all()},
	{ID: 38, Name: "Wild Woods", Cup: "Crossing", Origin: "MK8", Classes: all()},
	{ID: 39, Name: "Animal Crossing", Cup: "Crossing", Origin: "MK8", Classes: all()},
	{ID: 40, Name: "Big Blue", Cup: "Bell", Origin: "MK8", Classes: engineOnly()},
}
