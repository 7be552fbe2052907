package main

import (
	"context"
	"image"
	"log"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"lbview/internal/lightbox"
)

// NavigationDirection represents the direction of navigation
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
	NavigationJump
)

// navigationDirection infers the direction of a move from prev to next in a
// collection of count images, treating wraparound as a single step.
func navigationDirection(prev, next, count int) NavigationDirection {
	switch {
	case count <= 1 || prev == next:
		return NavigationJump
	case next == (prev+1)%count:
		return NavigationForward
	case next == (prev-1+count)%count:
		return NavigationBackward
	default:
		return NavigationJump
	}
}

// PreloadRequest represents a request to preload an image
type PreloadRequest struct {
	Index     int
	Direction NavigationDirection
}

// PreloadStats provides statistics about preloading
type PreloadStats struct {
	LoadedCount   int
	FailedCount   int
	LastDirection NavigationDirection
}

// PreloadManager manages asynchronous image preloading
type PreloadManager struct {
	requestChan  chan PreloadRequest
	ctx          context.Context
	cancel       context.CancelFunc
	imageManager *ImageManager
	mu           sync.RWMutex
	stats        PreloadStats
	maxPreload   int
	enabled      bool
}

// NewPreloadManager creates a new PreloadManager
func NewPreloadManager(imageManager *ImageManager, maxPreload int) *PreloadManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PreloadManager{
		requestChan:  make(chan PreloadRequest, 100),
		ctx:          ctx,
		cancel:       cancel,
		imageManager: imageManager,
		maxPreload:   maxPreload,
		enabled:      true,
	}

	go pm.worker()

	return pm
}

// SetEnabled enables or disables preloading
func (pm *PreloadManager) SetEnabled(enabled bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = enabled
}

// IsEnabled returns whether preloading is enabled
func (pm *PreloadManager) IsEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// GetStats returns current preload statistics
func (pm *PreloadManager) GetStats() PreloadStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.stats
}

// Stop stops the preload manager
func (pm *PreloadManager) Stop() {
	pm.cancel()
}

// StartPreload replaces any pending request with one around currentIdx.
func (pm *PreloadManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if !pm.IsEnabled() {
		return
	}

drain:
	for {
		select {
		case <-pm.requestChan:
			// discard pending requests
		default:
			break drain
		}
	}

	select {
	case pm.requestChan <- PreloadRequest{Index: currentIdx, Direction: direction}:
	default:
		debugLog("Preload request channel full, skipping preload request")
	}
}

func (pm *PreloadManager) worker() {
	for {
		select {
		case <-pm.ctx.Done():
			return
		case req := <-pm.requestChan:
			if pm.IsEnabled() {
				pm.processPreloadRequest(req)
			}
		}
	}
}

func (pm *PreloadManager) processPreloadRequest(req PreloadRequest) {
	pm.mu.Lock()
	pm.stats.LastDirection = req.Direction
	pm.mu.Unlock()

	indices := calculatePreloadIndices(req.Index, req.Direction, pm.imageManager.Len(), pm.maxPreload)
	for _, idx := range indices {
		select {
		case <-pm.ctx.Done():
			return
		default:
			pm.preloadImage(idx)
		}
	}
}

// calculatePreloadIndices picks the images to warm up around currentIdx.
// Navigation wraps around, so the indices do too; the current image and
// duplicates are never included.
func calculatePreloadIndices(currentIdx int, direction NavigationDirection, count, maxPreload int) []int {
	if count <= 1 || maxPreload <= 0 {
		return nil
	}

	var indices []int
	seen := map[int]bool{currentIdx: true}
	add := func(offset int) {
		idx := ((currentIdx+offset)%count + count) % count
		if !seen[idx] {
			seen[idx] = true
			indices = append(indices, idx)
		}
	}

	switch direction {
	case NavigationForward:
		for i := 1; i <= maxPreload; i++ {
			add(i)
		}
	case NavigationBackward:
		for i := 1; i <= maxPreload; i++ {
			add(-i)
		}
	default:
		// Both directions from a jump point
		half := (maxPreload + 1) / 2
		for i := 1; i <= half; i++ {
			add(i)
			add(-i)
		}
	}

	return indices
}

func (pm *PreloadManager) preloadImage(idx int) {
	url, ok := pm.imageManager.urlAt(idx)
	if !ok || pm.imageManager.Cached(url) {
		return
	}

	if err := pm.imageManager.load(url); err != nil {
		pm.mu.Lock()
		pm.stats.FailedCount++
		pm.mu.Unlock()
		debugLog("Preload failed for [%d] %s: %v", idx+1, url, err)
		return
	}

	pm.mu.Lock()
	pm.stats.LoadedCount++
	pm.mu.Unlock()

	debugLog("Preloaded [%d] %s (cache: %d items)", idx+1, url, pm.imageManager.cache.Len())
}

// ImageManager decodes images off the game loop and caches them by URL.
// Completed requests come back as tickets from TakeReady.
type ImageManager struct {
	urls  []string
	mu    sync.RWMutex
	cache *lru.Cache[string, *ebiten.Image]
	infos *lru.Cache[string, *ImageInfo]
	group singleflight.Group

	readyMu sync.Mutex
	ready   []lightbox.Ticket

	preloadManager *PreloadManager
}

func newImageCache(cacheSize int) *lru.Cache[string, *ebiten.Image] {
	onEvict := func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, onEvict)
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, onEvict)
	}
	return cache
}

// NewImageManager creates an ImageManager for urls. Preloading only runs
// when preloadEnabled is set.
func NewImageManager(urls []string, cacheSize, preloadCount int, preloadEnabled bool) *ImageManager {
	infos, err := lru.New[string, *ImageInfo](cacheSize * 4)
	if err != nil {
		infos, _ = lru.New[string, *ImageInfo](64)
	}

	m := &ImageManager{
		urls:  urls,
		cache: newImageCache(cacheSize),
		infos: infos,
	}

	m.preloadManager = NewPreloadManager(m, preloadCount)
	m.preloadManager.SetEnabled(preloadEnabled)
	return m
}

// Len returns the number of images in the collection.
func (m *ImageManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.urls)
}

func (m *ImageManager) urlAt(idx int) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.urls) {
		return "", false
	}
	return m.urls[idx], true
}

// Cached reports whether url is decoded and ready to draw.
func (m *ImageManager) Cached(url string) bool {
	return m.cache.Contains(url)
}

// Image returns the decoded image for url, or nil while it is loading.
func (m *ImageManager) Image(url string) *ebiten.Image {
	img, _ := m.cache.Get(url)
	return img
}

// Info returns the metadata for url once it has been loaded.
func (m *ImageManager) Info(url string) *ImageInfo {
	info, _ := m.infos.Get(url)
	return info
}

// TakeReady returns the tickets of the requests finished since the last
// call, oldest first.
func (m *ImageManager) TakeReady() []lightbox.Ticket {
	m.readyMu.Lock()
	defer m.readyMu.Unlock()
	tickets := m.ready
	m.ready = nil
	return tickets
}

// Request loads the ticket's image in the background and posts the ticket to
// TakeReady when it can be drawn. Cached images are posted immediately.
func (m *ImageManager) Request(t lightbox.Ticket) {
	if m.Cached(t.URL) {
		m.post(t)
		return
	}
	go func() {
		if err := m.load(t.URL); err != nil {
			log.Printf("Error: Failed to load image %s: %v", t.URL, err)
		}
		m.post(t)
	}()
}

func (m *ImageManager) post(t lightbox.Ticket) {
	m.readyMu.Lock()
	defer m.readyMu.Unlock()
	m.ready = append(m.ready, t)
}

// load decodes url into the cache. Concurrent loads of one URL share a
// single decode. Failures cache an error placeholder so the viewer can
// still leave the loading state, and are returned.
func (m *ImageManager) load(url string) error {
	_, err, _ := m.group.Do(url, func() (any, error) {
		if m.Cached(url) {
			return nil, nil
		}

		img, info, err := decodeURL(url)
		if err != nil {
			m.cache.Add(url, CreateErrorImage(400, 300, url, err.Error()))
			return nil, err
		}
		m.cache.Add(url, ebiten.NewImageFromImage(img))
		if info != nil {
			m.infos.Add(url, info)
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		debugLog("Cache MISS: %s, loaded and cached (cache: %d items, memory: %dMB)",
			url, m.cache.Len(), mem.Alloc/1024/1024)
		return nil, nil
	})
	return err
}

// decodeURL reads and decodes the image behind a viewer URL. The info is nil
// when the metadata cannot be read.
func decodeURL(url string) (image.Image, *ImageInfo, error) {
	p := parseImageURL(url)
	data, err := readImageBytes(p)
	if err != nil {
		return nil, nil, err
	}
	img, err := decodeImage(data, p.Path)
	if err != nil {
		return nil, nil, err
	}
	info, err := readImageInfo(data)
	if err != nil {
		debugLog("no metadata for %s: %v", url, err)
	}
	return img, info, nil
}

// StartPreload warms the cache around idx.
func (m *ImageManager) StartPreload(idx int, direction NavigationDirection) {
	m.preloadManager.StartPreload(idx, direction)
}

// Stop ends the preload worker.
func (m *ImageManager) Stop() {
	m.preloadManager.Stop()
}

// GetPreloadStats returns the preload counters.
func (m *ImageManager) GetPreloadStats() PreloadStats {
	return m.preloadManager.GetStats()
}
