package handler

import "github.com/gdamore/tcell/v2"

type delta struct{ dx, dy int }

var moveKeys = map[tcell.Key]delta{
	tcell.KeyUp:    {0, -1},
	tcell.KeyDown:  {0, 1},
	tcell.KeyLeft:  {-1, 0},
	tcell.KeyRight: {1, 0},
	tcell.KeyHome:  {-1, -1},
	tcell.KeyEnd:   {-1, 1},
	tcell.KeyPgUp:  {1, -1},
	tcell.KeyPgDn:  {1, 1},
}

// Vi keys and the digit row laid out like a numeric keypad.
var moveRunes = map[rune]delta{
	'h': {-1, 0},
	'j': {0, 1},
	'k': {0, -1},
	'l': {1, 0},
	'y': {-1, -1},
	'u': {1, -1},
	'b': {-1, 1},
	'n': {1, 1},

	'1': {-1, 1},
	'2': {0, 1},
	'3': {1, 1},
	'4': {-1, 0},
	'6': {1, 0},
	'7': {-1, -1},
	'8': {0, -1},
	'9': {1, -1},
}

var waitRunes = map[rune]bool{'.': true, '5': true}
