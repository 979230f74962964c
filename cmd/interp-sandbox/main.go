// Sandbox for eyeballing fixed-step interpolation. Sprites advance on a
// deliberately coarse simulation step while the terminal presents at full
// rate; toggling the blend on and off makes the difference obvious.
//
// Keys: space pause, +/- speed, b toggle blending, w toggle wrap, q quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/venlott/smoothtick/engine"
	"github.com/venlott/smoothtick/events"
	"github.com/venlott/smoothtick/metrics"
	"github.com/venlott/smoothtick/scene"
)

type sprite struct {
	node   *scene.Node
	vx, vy float64 // cells per second
	glyph  rune
	style  tcell.Style
}

// app state is owned by the loop goroutine. The input goroutine posts
// closures through commands; present drains them before drawing, so the
// scene tree is never touched from two goroutines at once.
type app struct {
	screen tcell.Screen
	cfg    *SandboxConfig
	audio  *audioState

	commands chan func()

	width   int
	height  int
	sprites []*sprite
	wrap    bool
	blend   bool

	root   *scene.Node
	ticker *engine.Ticker

	// HUD values, updated from loop diagnostics
	fps float64
	ups float64
}

var spriteGlyphs = []rune("@#*o+x%&")

var spriteColors = []tcell.Color{
	tcell.ColorGreen, tcell.ColorYellow, tcell.ColorBlue,
	tcell.ColorRed, tcell.ColorFuchsia, tcell.ColorAqua,
}

func newApp(cfg *SandboxConfig) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &app{
		screen:   screen,
		cfg:      cfg,
		audio:    initAudio(),
		commands: make(chan func(), 16),
		wrap:     cfg.Sprites.Wrap,
		blend:    true,
	}
	a.width, a.height = screen.Size()

	a.root = scene.NewNode()
	a.root.Smooth = scene.FlagOff
	a.root.SmoothChildren = scene.FlagOn
	a.spawnSprites()

	a.ticker = engine.NewTicker(a.root, a.simulate, a.present, engine.Config{
		Step:         cfg.Loop.Step,
		Speed:        cfg.Loop.Speed,
		MaxFPS:       cfg.Loop.MaxFPS,
		FPSTolerance: cfg.Loop.FPSTolerance,
	})
	return a, nil
}

// post hands a state mutation to the loop goroutine. Dropped if the
// queue is full, a later keypress can always redo it
func (a *app) post(fn func()) {
	select {
	case a.commands <- fn:
	default:
	}
}

func (a *app) spawnSprites() {
	for i := 0; i < a.cfg.Sprites.Count; i++ {
		n := a.root.AddChild(scene.NewNode())
		n.X = rand.Float64() * float64(a.width)
		n.Y = rand.Float64() * float64(a.height)

		speed := a.cfg.Sprites.MinSpeed + rand.Float64()*(a.cfg.Sprites.MaxSpeed-a.cfg.Sprites.MinSpeed)
		angle := rand.Float64() * 2 * math.Pi
		s := &sprite{
			node:  n,
			vx:    speed * math.Cos(angle),
			vy:    speed * math.Sin(angle) / 2, // terminal cells are tall
			glyph: spriteGlyphs[i%len(spriteGlyphs)],
			style: tcell.StyleDefault.Foreground(spriteColors[i%len(spriteColors)]),
		}
		a.sprites = append(a.sprites, s)
	}
	a.applyWrap()
}

// applyWrap points every sprite's wrap range at the current world size,
// or clears it for bounce mode
func (a *app) applyWrap() {
	var rng *scene.WrapRange
	if a.wrap {
		rng = &scene.WrapRange{X: float64(a.width), Y: float64(a.height)}
	}
	for _, s := range a.sprites {
		s.node.Wrap = rng
	}
}

// simulate advances every sprite by one fixed step
func (a *app) simulate(step time.Duration) {
	dt := step.Seconds()
	w, h := float64(a.width), float64(a.height)

	for _, s := range a.sprites {
		n := s.node
		n.X += s.vx * dt
		n.Y += s.vy * dt

		if a.wrap {
			n.X = mod(n.X, w)
			n.Y = mod(n.Y, h)
			continue
		}

		bounced := false
		if n.X < 0 {
			n.X, s.vx, bounced = -n.X, -s.vx, true
		} else if n.X > w-1 {
			n.X, s.vx, bounced = 2*(w-1)-n.X, -s.vx, true
		}
		if n.Y < 0 {
			n.Y, s.vy, bounced = -n.Y, -s.vy, true
		} else if n.Y > h-1 {
			n.Y, s.vy, bounced = 2*(h-1)-n.Y, -s.vy, true
		}
		if bounced {
			a.audio.playBounce()
		}
	}
}

// present draws the scene. Node positions are the blended values while
// this callback runs
func (a *app) present(root *scene.Node) {
	a.drainCommands()
	a.drainEvents()

	a.screen.Clear()
	for _, s := range a.sprites {
		x, y := int(s.node.X), int(s.node.Y)
		if x >= 0 && x < a.width && y >= 0 && y < a.height {
			a.screen.SetContent(x, y, s.glyph, nil, s.style)
		}
	}
	a.drawHUD()
	a.screen.Show()
}

func (a *app) drainCommands() {
	for {
		select {
		case fn := <-a.commands:
			fn()
		default:
			return
		}
	}
}

func (a *app) drainEvents() {
	for _, ev := range a.ticker.Events().Consume() {
		switch ev.Type {
		case events.EventFrameRateChanged:
			a.fps = ev.Payload.(*events.RateChangedPayload).Rate
		case events.EventUpdateRateChanged:
			a.ups = ev.Payload.(*events.RateChangedPayload).Rate
		}
	}
}

func (a *app) drawHUD() {
	mode := "bounce"
	if a.wrap {
		mode = "wrap"
	}
	blend := "on"
	if !a.blend {
		blend = "off"
	}
	state := ""
	if a.ticker.Paused() {
		state = " [paused]"
	}
	hud := fmt.Sprintf(" fps %.0f | ups %.0f | speed %.2gx | blend %s | %s%s ",
		a.fps, a.ups, a.ticker.Speed(), blend, mode, state)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	for i, r := range hud {
		if i >= a.width {
			break
		}
		a.screen.SetContent(i, a.height-1, r, nil, style)
	}
}

// toggleBlend switches every sprite between tracked and untracked. With
// blending off, sprites jump once per simulation step
func (a *app) toggleBlend() {
	a.blend = !a.blend
	if a.blend {
		a.root.SmoothChildren = scene.FlagOn
	} else {
		a.root.SmoothChildren = scene.FlagOff
	}
}

func (a *app) run() {
	a.ticker.Start()
	defer a.ticker.Stop()

	speed := a.cfg.Loop.Speed
	for {
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			a.post(func() {
				a.width, a.height = w, h
				a.applyWrap()
			})
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return
			}
			if ev.Key() != tcell.KeyRune {
				continue
			}
			switch ev.Rune() {
			case 'q':
				return
			case ' ':
				if a.ticker.Paused() {
					a.ticker.Resume()
				} else {
					a.ticker.Pause()
				}
			case '+', '=':
				speed *= 1.25
				a.ticker.SetSpeed(speed)
			case '-', '_':
				speed *= 0.8
				a.ticker.SetSpeed(speed)
			case 'b':
				a.post(a.toggleBlend)
			case 'w':
				a.post(func() {
					a.wrap = !a.wrap
					a.applyWrap()
				})
			}
		}
	}
}

func (a *app) cleanup() {
	a.audio.close()
	a.screen.Fini()
}

func mod(v, rng float64) float64 {
	v = math.Mod(v, rng)
	if v < 0 {
		v += rng
	}
	return v
}

func main() {
	configPath := flag.String("config", "", "path to a YAML scene manifest")
	metricsAddr := flag.String("metrics", "", "listen address for Prometheus /metrics (disabled when empty)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.cleanup()

	if *metricsAddr != "" {
		collector, err := metrics.NewLoopCollector(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register metrics: %v\n", err)
			os.Exit(1)
		}
		a.ticker.SetObserver(collector)

		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	a.run()
}
