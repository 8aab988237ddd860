package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/ui/theme"
)

// CarPose selects which car art to display.
type CarPose int

const (
	CarParked  CarPose = iota // Default
	CarVictory                // Checkered flag, last race was won
)

const carRoof = `    ▄▄████▄▄`
const carBody = ` ▄██▀▀████▀▀██▄▄`
const carStripe = ` ██▄▄▄▄▄▄▄▄▄▄▄██▌`
const carWheels = `  ▀(◎)▀▀▀▀▀(◎)▀`

const victoryFlag = `           ▛▚▞▜
           ▌▞▚▐
           ▏`

// RenderCar returns the car art painted in the car's colors.
func RenderCar(car progression.Car, pose ...CarPose) string {
	p := CarParked
	if len(pose) > 0 {
		p = pose[0]
	}

	body := lipgloss.NewStyle().Foreground(theme.Hex(car.Color()))
	stripe := lipgloss.NewStyle().Foreground(theme.Hex(car.Stripe()))
	wheels := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := []string{
		body.Render(carRoof),
		body.Render(carBody),
		stripe.Render(carStripe),
		wheels.Render(carWheels),
	}
	if p == CarVictory {
		flag := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(victoryFlag)
		lines = append([]string{flag}, lines...)
	}
	return strings.Join(lines, "\n")
}
