package progression

import "github.com/samber/lo"

// Car is a player car skin.
type Car int

const (
	CarRedRocket Car = iota + 1
	CarBlueBolt
	CarGreenGhost
	CarGoldChaser
	CarPurpleStorm
)

// AllCars returns every car in unlock order.
func AllCars() []Car {
	return []Car{CarRedRocket, CarBlueBolt, CarGreenGhost, CarGoldChaser, CarPurpleStorm}
}

// Valid reports whether c is a known car.
func (c Car) Valid() bool {
	return c >= CarRedRocket && c <= CarPurpleStorm
}

// Name returns the display name of the car.
func (c Car) Name() string {
	switch c {
	case CarRedRocket:
		return "Red Rocket"
	case CarBlueBolt:
		return "Blue Bolt"
	case CarGreenGhost:
		return "Green Ghost"
	case CarGoldChaser:
		return "Gold Chaser"
	case CarPurpleStorm:
		return "Purple Storm"
	default:
		return "Unknown"
	}
}

// UnlockCoins returns the coin balance needed to drive the car.
func (c Car) UnlockCoins() int {
	switch c {
	case CarRedRocket:
		return 0
	case CarBlueBolt:
		return 30
	case CarGreenGhost:
		return 75
	case CarGoldChaser:
		return 130
	case CarPurpleStorm:
		return 200
	default:
		return -1
	}
}

// Color returns the body color (hex).
func (c Car) Color() string {
	switch c {
	case CarBlueBolt:
		return "#1155CC"
	case CarGreenGhost:
		return "#116622"
	case CarGoldChaser:
		return "#AA6600"
	case CarPurpleStorm:
		return "#660088"
	default:
		return "#CC2200"
	}
}

// Stripe returns the accent stripe color (hex).
func (c Car) Stripe() string {
	switch c {
	case CarBlueBolt:
		return "#55AAFF"
	case CarGreenGhost:
		return "#44EE88"
	case CarGoldChaser:
		return "#FFEE22"
	case CarPurpleStorm:
		return "#DD66FF"
	default:
		return "#FF6644"
	}
}

// UnlockedCars returns the cars unlocked with the given coin balance.
func UnlockedCars(coins int) []Car {
	return lo.Filter(AllCars(), func(c Car, _ int) bool { return coins >= c.UnlockCoins() })
}

// ResolveCar returns c if it is valid and unlocked, otherwise the first car.
func ResolveCar(c Car, coins int) Car {
	if c.Valid() && coins >= c.UnlockCoins() {
		return c
	}
	return CarRedRocket
}
