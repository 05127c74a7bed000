package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// instance is one Chrome process and the pages currently open in it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	open     int
	retired  bool
}

func (i *instance) shutdown() error {
	err := i.browser.Close()
	i.launcher.Kill()
	return err
}

// browser hands out a headless Chrome process and relaunches it after a
// fixed number of pages. Chrome's resident memory grows with every page it
// renders and a long review crawl renders thousands. A retired process
// stays alive until its last open page is released.
type browser struct {
	mu      sync.Mutex
	current *instance
	served  int
	recycle int
}

func launch(recycle int) (*browser, error) {
	inst, err := start()
	if err != nil {
		return nil, err
	}
	return &browser{current: inst, recycle: recycle}, nil
}

// acquire returns the browser to open the next page in and a func that
// must be called once that page is closed. When the current process has
// served its quota a new one is launched first; a failed launch keeps the
// old process.
func (b *browser) acquire() (*rod.Browser, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.recycle > 0 && b.served >= b.recycle {
		if fresh, err := start(); err == nil {
			old := b.current
			old.retired = true
			if old.open == 0 {
				_ = old.shutdown()
			}
			b.current = fresh
			b.served = 0
		}
	}

	inst := b.current
	inst.open++
	b.served++
	return inst.browser, func() { b.release(inst) }
}

func (b *browser) release(inst *instance) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inst.open--
	if inst.retired && inst.open == 0 {
		_ = inst.shutdown()
	}
}

func start() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: b, launcher: l}, nil
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return nil
	}
	err := b.current.shutdown()
	b.current = nil
	return err
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return 0
	}
	return b.current.launcher.PID()
}
