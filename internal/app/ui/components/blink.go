package components

import (
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// Pulse frames from dim to bright
var pulseFrames = []string{"◌", "◍", "●"}

const (
	pulseFPS = UITicksPerSecond

	// Spring physics parameters
	pulseAngularFrequency = 6.0
	pulseDampingRatio     = 0.6

	// Ticks spent rising and falling; one full breath is twice this
	pulseHalfPeriodTicks = 4

	pulsePositionFull  = 1.0
	pulsePositionEmpty = 0.0
)

// Blink animates a breathing indicator with spring physics while a request is in flight
type Blink struct {
	spring    harmonica.Spring
	position  float64
	velocity  float64
	target    float64
	active    bool
	tickCount int
}

// NewBlink creates an inactive pulse
func NewBlink() *Blink {
	return &Blink{
		spring: harmonica.NewSpring(harmonica.FPS(pulseFPS), pulseAngularFrequency, pulseDampingRatio),
	}
}

// Start begins the animation rising from dim; a running pulse keeps its phase
func (b *Blink) Start() {
	if b.active {
		return
	}

	b.active = true
	b.target = pulsePositionFull
	b.tickCount = 0
}

// Stop ends the animation and resets to the dim frame
func (b *Blink) Stop() {
	b.active = false
	b.position = pulsePositionEmpty
	b.velocity = pulsePositionEmpty
	b.target = pulsePositionEmpty
	b.tickCount = 0
}

// Update advances the animation by one UI tick
func (b *Blink) Update() {
	if !b.active {
		return
	}

	b.tickCount++
	if b.tickCount >= pulseHalfPeriodTicks {
		b.tickCount = 0

		if b.target == pulsePositionFull {
			b.target = pulsePositionEmpty
		} else {
			b.target = pulsePositionFull
		}
	}

	b.position, b.velocity = b.spring.Update(b.position, b.velocity, b.target)
}

// Frame returns the glyph for the current spring position
func (b *Blink) Frame() string {
	if !b.active {
		return pulseFrames[0]
	}

	idx := int(b.position * float64(len(pulseFrames)))

	switch {
	case idx < 0:
		idx = 0
	case idx >= len(pulseFrames):
		idx = len(pulseFrames) - 1
	}

	return pulseFrames[idx]
}

// Render returns the styled frame
func (b *Blink) Render(style lipgloss.Style) string {
	return style.Render(b.Frame())
}

// IsActive returns whether the animation is currently running
func (b *Blink) IsActive() bool {
	return b.active
}
