// 输入目录变更监听器实现。
//
// 基于轮询比较修改时间与大小，防抖后批量回调。
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// --- 事件类型定义 ---

// Op 文件操作类型
type Op int

const (
	// OpCreate 文件已创建
	OpCreate Op = iota
	// OpWrite 文件已修改
	OpWrite
	// OpRemove 文件已删除
	OpRemove
)

// String 返回操作名称
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// Event 一次文件变更
type Event struct {
	Path      string    `json:"path"`
	Op        Op        `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler 处理一批防抖后的事件，事件按路径排序
type Handler func(ctx context.Context, events []Event)

type fileState struct {
	modTime time.Time
	size    int64
}

// --- 监听器选项 ---

// Option 配置 Watcher
type Option func(*Watcher)

// WithInterval 设置轮询间隔
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithDebounce 设置防抖延迟，0 表示每次轮询后立即回调
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithMatcher 设置文件名过滤函数，默认匹配所有文件
func WithMatcher(match func(name string) bool) Option {
	return func(w *Watcher) {
		if match != nil {
			w.match = match
		}
	}
}

// WithLogger 设置日志
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// --- 监听器实现 ---

// Watcher 轮询监听单个目录（非递归）
type Watcher struct {
	mu sync.Mutex

	dir      string
	interval time.Duration
	debounce time.Duration
	match    func(name string) bool
	logger   *zap.Logger

	primed   bool
	snapshot map[string]fileState
}

// New 创建目录监听器
func New(dir string, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		interval: 2 * time.Second,
		debounce: 500 * time.Millisecond,
		match:    func(string) bool { return true },
		logger:   zap.NewNop(),
		snapshot: make(map[string]fileState),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(zap.String("component", "watch"), zap.String("dir", dir))
	return w
}

// Dir 返回监听的目录
func (w *Watcher) Dir() string { return w.dir }

// Prime 记录当前目录状态但不产生事件
func (w *Watcher) Prime() error {
	_, err := w.scan(false)
	return err
}

// Scan 轮询一次，返回与上次快照相比的变更。
// 目录暂时不存在时视为空目录。
func (w *Watcher) Scan() ([]Event, error) {
	return w.scan(true)
}

func (w *Watcher) scan(emit bool) ([]Event, error) {
	current, err := w.list()
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	var events []Event
	if emit && w.primed {
		for path, st := range current {
			prev, existed := w.snapshot[path]
			switch {
			case !existed:
				events = append(events, Event{Path: path, Op: OpCreate, Timestamp: now})
			case !st.modTime.Equal(prev.modTime) || st.size != prev.size:
				events = append(events, Event{Path: path, Op: OpWrite, Timestamp: now})
			}
		}
		for path := range w.snapshot {
			if _, ok := current[path]; !ok {
				events = append(events, Event{Path: path, Op: OpRemove, Timestamp: now})
			}
		}
	}
	w.snapshot = current
	w.primed = true

	sortEvents(events)
	return events, nil
}

func (w *Watcher) list() (map[string]fileState, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]fileState{}, nil
		}
		return nil, fmt.Errorf("read watch directory: %w", err)
	}

	out := make(map[string]fileState, len(entries))
	for _, e := range entries {
		if e.IsDir() || !w.match(e.Name()) {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		out[path] = fileState{modTime: info.ModTime(), size: info.Size()}
	}
	return out, nil
}

// Run 轮询目录直到 ctx 结束，事件防抖后交给 handler。
// 未调用 Prime 时，首次轮询只建立快照。
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var (
		pending = make(map[string]Event)
		timer   *time.Timer
		fire    <-chan time.Time
	)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := make([]Event, 0, len(pending))
		for _, e := range pending {
			batch = append(batch, e)
		}
		sortEvents(batch)
		pending = make(map[string]Event)
		w.logger.Debug("dispatching file events", zap.Int("events", len(batch)))
		handler(ctx, batch)
	}

	w.logger.Info("watching input directory",
		zap.Duration("interval", w.interval),
		zap.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case <-ticker.C:
			events, err := w.Scan()
			if err != nil {
				w.logger.Warn("watch scan failed", zap.Error(err))
				continue
			}
			if len(events) == 0 {
				continue
			}
			// 同一路径的后续事件覆盖之前的事件
			for _, e := range events {
				pending[e.Path] = e
			}
			if w.debounce == 0 {
				flush()
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			flush()
		}
	}
}

func sortEvents(events []Event) {
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
}
