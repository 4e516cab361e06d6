package timekeeper

import (
	"sync"
	"time"
)

// Advancer is stepped once per logical second by a Driver.
type Advancer interface {
	Advance()
}

// Config contains runtime options for Driver.
type Config struct {
	TickInterval time.Duration
}

// Driver is the single tick source of the application. It advances every attached
// Advancer once per tick and serializes user actions (Do) with ticks, so no state
// is touched concurrently.
type Driver struct {
	mu       sync.Mutex
	options  Config
	attached []*attachment
	ticks    uint64
	stopCh   chan struct{}
	running  bool
}

type attachment struct {
	advancer Advancer
	active   bool
}

// NewDriver creates a stopped Driver.
func NewDriver(options Config) *Driver {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Driver{options: options}
}

// Attach registers advancer and returns a function that detaches it. Detaching is
// idempotent and takes effect before the next tick.
func (driver *Driver) Attach(advancer Advancer) func() {
	entry := &attachment{advancer: advancer, active: true}
	driver.mu.Lock()
	driver.attached = append(driver.attached, entry)
	driver.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			driver.mu.Lock()
			defer driver.mu.Unlock()
			driver.detachLocked(entry)
		})
	}
}

// Do runs fn inside the loop. fn must not call Do or Step.
func (driver *Driver) Do(fn func()) {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	fn()
}

// Step advances every attached Advancer by one second.
func (driver *Driver) Step() {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	driver.stepLocked()
}

// Ticks returns the number of steps taken so far.
func (driver *Driver) Ticks() uint64 {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.ticks
}

// Start launches the ticking loop.
func (driver *Driver) Start() {
	driver.mu.Lock()
	if driver.running {
		driver.mu.Unlock()
		return
	}
	driver.running = true
	driver.stopCh = make(chan struct{})
	stopCh := driver.stopCh
	driver.mu.Unlock()

	go driver.run(stopCh)
}

// Stop terminates the ticking loop. Attached advancers stay attached.
func (driver *Driver) Stop() {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	if !driver.running {
		return
	}
	close(driver.stopCh)
	driver.running = false
}

// Running reports whether the ticking loop is active.
func (driver *Driver) Running() bool {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.running
}

func (driver *Driver) run(stopCh chan struct{}) {
	ticker := time.NewTicker(driver.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			driver.mu.Lock()
			// A tick that raced with Stop is dropped.
			select {
			case <-stopCh:
				driver.mu.Unlock()
				return
			default:
			}
			driver.stepLocked()
			driver.mu.Unlock()
		}
	}
}

func (driver *Driver) stepLocked() {
	driver.ticks++
	entries := append([]*attachment(nil), driver.attached...)
	for _, entry := range entries {
		if entry.active {
			entry.advancer.Advance()
		}
	}
}

func (driver *Driver) detachLocked(entry *attachment) {
	entry.active = false
	for index, candidate := range driver.attached {
		if candidate == entry {
			driver.attached = append(driver.attached[:index], driver.attached[index+1:]...)
			return
		}
	}
}
