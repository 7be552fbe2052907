package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"lbview/internal/lightbox"
)

var debugMode = os.Getenv("LBVIEW_DEBUG") != ""

func debugLog(format string, args ...any) {
	if debugMode {
		log.Printf("Debug: "+format, args...)
	}
}

// initLogging routes viewer diagnostics to stderr: warnings and errors
// always, debug records when LBVIEW_DEBUG is set.
func initLogging() {
	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	lightbox.SetLogger(slog.New(handler).With("component", "lightbox"))
}

type Game struct {
	config       Config
	configStatus ConfigLoadResult

	viewer   *lightbox.Viewer
	images   *ImageManager
	renderer *Renderer
	input    *InputHandler
	keys     *keyBus

	view          lightbox.ViewModel
	hasView       bool
	missingLogged bool
	layout        frameLayout
	lastSnapshot  *RenderStateSnapshot
	dirty         bool

	windowW, windowH int
	savedWinW        int
	savedWinH        int
	fullscreen       bool
	showInfo         bool

	prevIndex   int
	rerequested string
}

// newGame wires the viewer to the image manager, the renderer and the input
// handlers. opts carries the image source and the configured behaviour.
func newGame(result ConfigLoadResult, opts lightbox.Options) *Game {
	g := &Game{
		config:       result.Config,
		configStatus: result,
		keys:         newKeyBus(),
		fullscreen:   result.Config.Fullscreen,
		dirty:        true,
	}

	opts.OnNavigateImage = g.onNavigate
	opts.OnClose = g.onClose
	opts.Bounds = lightbox.BoundsFunc(func() lightbox.Rect { return g.layout.Canvas })
	g.viewer = lightbox.New(opts)
	g.prevIndex = g.viewer.State().Current

	g.images = NewImageManager(imageURLs(opts), g.config.CacheSize, g.config.PreloadCount, g.config.PreloadEnabled)
	g.renderer = NewRenderer(g)

	pointer := NewPointerHandler(g.viewer, g.FrameLayout, g.config.Mouse)
	g.input = NewInputHandler(g, g.keys,
		NewKeybindingManager(g.config.Keybindings),
		NewMousebindingManager(g.config.Mousebindings, g.config.Mouse),
		pointer)
	return g
}

// imageURLs lists the URLs the image manager can load, in viewer order.
func imageURLs(opts lightbox.Options) []string {
	if len(opts.Images) == 0 {
		return []string{opts.Image}
	}
	urls := make([]string, len(opts.Images))
	for i, ref := range opts.Images {
		urls[i], _ = lightbox.Resolve(ref)
	}
	return urls
}

// start mounts the viewer and requests the first image.
func (g *Game) start() {
	g.viewer.Mount(g.keys)
	g.images.Request(g.viewer.LoadTicket())
	g.images.StartPreload(g.prevIndex, NavigationJump)
}

func (g *Game) onNavigate(idx int) {
	direction := navigationDirection(g.prevIndex, idx, g.viewer.Count())
	g.prevIndex = idx
	debugLog("navigate to [%d/%d] direction=%d", idx+1, g.viewer.Count(), direction)

	g.images.Request(g.viewer.LoadTicket())
	g.images.StartPreload(idx, direction)
}

func (g *Game) onClose(e lightbox.Event) {
	debugLog("close requested by %T", e)
	g.viewer.Unmount()
}

func (g *Game) saveCurrentWindowSize() {
	if g.fullscreen {
		// Save the size from before fullscreen
		if g.savedWinW > 0 && g.savedWinH > 0 {
			g.config.WindowWidth = g.savedWinW
			g.config.WindowHeight = g.savedWinH
		}
	} else {
		w, h := ebiten.WindowSize()
		g.config.WindowWidth = w
		g.config.WindowHeight = h
	}
	g.config.Fullscreen = g.fullscreen
	saveConfig(g.config)
}

func (g *Game) Update() error {
	if !lightbox.IsOpen() {
		g.saveCurrentWindowSize()
		g.images.Stop()
		return ebiten.Termination
	}

	g.drainReady()
	g.refreshView()

	if g.input.HandleInput() {
		g.dirty = true
		if !g.viewer.Mounted() {
			return nil
		}
		g.refreshView()
	}

	g.ensureCurrentImage()

	if g.hasView && g.view.Grab {
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}

	snapshot := NewRenderStateSnapshot(g, g.windowW, g.windowH)
	if !snapshot.Equals(g.lastSnapshot) {
		g.dirty = true
	}
	g.lastSnapshot = snapshot

	return nil
}

// drainReady hands finished loads to the viewer.
func (g *Game) drainReady() {
	for _, t := range g.images.TakeReady() {
		if g.viewer.MarkLoaded(t) {
			g.dirty = true
		}
	}
}

// ensureCurrentImage asks again for an image the cache dropped while it was
// on screen.
func (g *Game) ensureCurrentImage() {
	url, _ := g.viewer.CurrentImage()
	if url == "" || g.viewer.State().Loading || g.images.Cached(url) || g.rerequested == url {
		return
	}
	g.rerequested = url
	g.images.Request(g.viewer.LoadTicket())
}

// refreshView takes this frame's view model and layout from the viewer.
func (g *Game) refreshView() {
	g.view, g.hasView = g.currentView()
	if !g.hasView {
		g.layout = frameLayout{}
		return
	}
	g.layout = g.renderer.Layout(g.view, g.GetCurrentImage(), g.windowW, g.windowH, g.viewer.Options().ButtonAlign)
}

// currentView asks the viewer for its view model. An image without a URL is
// reported by the viewer once, not on every frame.
func (g *Game) currentView() (lightbox.ViewModel, bool) {
	if url, _ := g.viewer.CurrentImage(); url == "" && g.missingLogged {
		return lightbox.ViewModel{}, false
	}
	vm, ok := g.viewer.View()
	g.missingLogged = !ok
	return vm, ok
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.dirty {
		return
	}
	g.renderer.Draw(screen)
	g.dirty = false
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.windowW || outsideHeight != g.windowH {
		g.windowW, g.windowH = outsideWidth, outsideHeight
		g.dirty = true
	}
	return outsideWidth, outsideHeight
}

// RenderState

func (g *Game) View() (lightbox.ViewModel, bool) {
	return g.view, g.hasView
}

func (g *Game) FrameLayout() frameLayout {
	return g.layout
}

func (g *Game) GetCurrentImage() *ebiten.Image {
	url, _ := g.viewer.CurrentImage()
	return g.images.Image(url)
}

func (g *Game) GetImageInfo() *ImageInfo {
	url, _ := g.viewer.CurrentImage()
	return g.images.Info(url)
}

func (g *Game) IsFullscreen() bool {
	return g.fullscreen
}

func (g *Game) IsShowingInfo() bool {
	return g.showInfo
}

func (g *Game) GetFontSize() float64 {
	return g.config.FontSize
}

func (g *Game) GetConfigStatus() ConfigLoadResult {
	return g.configStatus
}

func (g *Game) GetPreloadStats() PreloadStats {
	return g.images.GetPreloadStats()
}

// InputActions

func (g *Game) Quit() {
	g.viewer.Exit(lightbox.KeyEvent{Key: "q"})
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
}

func (g *Game) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
}

func (g *Game) NavigateNext() {
	g.viewer.Navigate(lightbox.Next)
}

func (g *Game) NavigatePrevious() {
	g.viewer.Navigate(lightbox.Prev)
}

func (g *Game) RotateLeft() {
	if g.viewer.Options().AllowRotate {
		g.viewer.Rotate(lightbox.CounterClockwise)
	}
}

func (g *Game) RotateRight() {
	if g.viewer.Options().AllowRotate {
		g.viewer.Rotate(lightbox.Clockwise)
	}
}

func (g *Game) ZoomIn() {
	if g.viewer.Options().AllowZoom {
		g.viewer.StepZoom(lightbox.ZoomIn)
	}
}

func (g *Game) ZoomOut() {
	if g.viewer.Options().AllowZoom {
		g.viewer.StepZoom(lightbox.ZoomOut)
	}
}

func (g *Game) ZoomReset() {
	if g.viewer.Options().AllowZoom {
		g.viewer.StepZoom(lightbox.ZoomResetStep)
	}
}

func (g *Game) Reset() {
	if g.viewer.Options().AllowReset {
		g.viewer.FullReset()
	}
}

func main() {
	initLogging()

	result := loadConfig()
	debugLog("%s", describeConfig(result))
	config := result.Config

	startIndex := flag.Int("start", 0, "index of the first image in a collection")
	title := flag.String("title", "", "title shown for a single image")
	manifest := flag.String("manifest", "", "JSON file listing the images to show")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags] <image|directory|archive>...\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(out, "\nBindings:\n")
		km := NewKeybindingManager(config.Keybindings)
		mm := NewMousebindingManager(config.Mousebindings, config.Mouse)
		for _, line := range bindingHelp(km, mm) {
			fmt.Fprintf(out, "  %s\n", line)
		}
		fmt.Fprintf(out, "  Arrows pan, +/- zoom, Escape resets or closes\n")
	}
	flag.Parse()

	opts := config.ViewerOptions()
	if err := sourceOptions(&opts, flag.Args(), *manifest, *title, config.SortMethod); err != nil {
		log.Fatal(err)
	}
	opts.StartIndex = *startIndex

	g := newGame(result, opts)
	if url, _ := g.viewer.CurrentImage(); url == "" {
		log.Fatal("no image files specified")
	}
	g.start()
	defer g.viewer.Unmount()

	ebiten.SetWindowTitle("lbview")
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if g.fullscreen {
		g.savedWinW, g.savedWinH = config.WindowWidth, config.WindowHeight
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
