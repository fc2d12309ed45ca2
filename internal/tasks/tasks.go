package tasks

import (
	"log"
	"time"

	"github.com/marketlens/bhavview/internal/refdata"
)

// Manager handles the execution of scheduled tasks
type Manager struct {
	cache *refdata.Cache
	tasks []Task
}

// Task represents a scheduled task that needs to be executed
type Task interface {
	Start()
	Stop()
}

// NewManager creates a new task manager
func NewManager(cache *refdata.Cache) *Manager {
	return &Manager{
		cache: cache,
		tasks: make([]Task, 0),
	}
}

// RegisterTask registers a task with the manager
func (m *Manager) RegisterTask(task Task) {
	m.tasks = append(m.tasks, task)
}

// StartScheduledTasks starts all registered tasks
func (m *Manager) StartScheduledTasks() {
	// Register the reference data warm task
	warmTask := NewRefDataWarmTask(m.cache)
	m.RegisterTask(warmTask)

	// Start all registered tasks
	for _, task := range m.tasks {
		go task.Start()
	}

	log.Println("Started all scheduled tasks")
}

// StopAllTasks stops all running tasks
func (m *Manager) StopAllTasks() {
	for _, task := range m.tasks {
		task.Stop()
	}
	log.Println("Stopped all scheduled tasks")
}

// RefDataWarmTask refreshes the index constituent lists and the equity name
// master once a day, so the first query after the cache TTL lapses does not
// pay for four downloads. The cache itself stays lazy; this task just calls
// it.
type RefDataWarmTask struct {
	cache     *refdata.Cache
	stopChan  chan struct{}
	isRunning bool
}

// NewRefDataWarmTask creates a new reference data warm task
func NewRefDataWarmTask(cache *refdata.Cache) *RefDataWarmTask {
	return &RefDataWarmTask{
		cache:     cache,
		stopChan:  make(chan struct{}),
		isRunning: false,
	}
}

// Start begins the warm task
func (t *RefDataWarmTask) Start() {
	if t.isRunning {
		return
	}

	t.isRunning = true
	ticker := time.NewTicker(24 * time.Hour) // Run once per day

	// Run immediately on start
	go t.warm()

	go func() {
		for {
			select {
			case <-ticker.C:
				t.warm()
			case <-t.stopChan:
				ticker.Stop()
				t.isRunning = false
				return
			}
		}
	}()

	log.Println("Reference data warm task started")
}

// Stop terminates the warm task
func (t *RefDataWarmTask) Stop() {
	if !t.isRunning {
		return
	}

	close(t.stopChan)
	log.Println("Reference data warm task stopped")
}

// warm pulls every reference dataset through the cache
func (t *RefDataWarmTask) warm() {
	log.Println("Running scheduled reference data refresh")
	t.cache.Warm()
	log.Println("Reference data refresh completed")
}
