package disc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"singe/internal/logging"
)

const defaultPollInterval = 3 * time.Second

// Monitor waits for optical media insertion on a device. It prefers udev
// netlink events and falls back to polling the inspector when the netlink
// socket is unavailable (containers, missing permissions).
type Monitor struct {
	inspector    *Inspector
	logger       *slog.Logger
	pollInterval time.Duration

	// connect is swapped out in tests to avoid touching real netlink sockets.
	connect func() (ueventSource, error)
}

// ueventSource is the subset of netlink.UEventConn the monitor uses.
type ueventSource interface {
	Monitor(queue chan netlink.UEvent, errs chan error, matcher netlink.Matcher) chan struct{}
	Close() error
}

// NewMonitor constructs a media monitor backed by the given inspector.
func NewMonitor(inspector *Inspector, logger *slog.Logger) *Monitor {
	return &Monitor{
		inspector:    inspector,
		logger:       logging.NewComponentLogger(logger, "disc-monitor"),
		pollInterval: defaultPollInterval,
		connect: func() (ueventSource, error) {
			conn := new(netlink.UEventConn)
			if err := conn.Connect(netlink.UdevEvent); err != nil {
				return nil, err
			}
			return conn, nil
		},
	}
}

// WaitForBlankMedia blocks until a blank disc is present in the device or the
// context ends. It returns immediately when a blank disc is already loaded.
func (m *Monitor) WaitForBlankMedia(ctx context.Context, device string) error {
	status, err := m.inspector.CheckStatus(ctx, device)
	if err == nil && status.Writable() {
		return nil
	}

	conn, err := m.connect()
	if err != nil {
		m.logger.Warn("netlink socket unavailable, polling for media",
			logging.Error(err),
			logging.String(logging.FieldDevice, device))
		return m.pollForBlankMedia(ctx, device)
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(queue, errs, mediaChangeMatcher())
	defer close(quit)

	m.logger.Info("waiting for blank media",
		logging.String(logging.FieldDevice, device))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case uevent := <-queue:
			if deviceName(uevent) != device {
				continue
			}
			status, err := m.inspector.CheckStatus(ctx, device)
			if err != nil {
				m.logger.Warn("probe after media event failed",
					logging.Error(err),
					logging.String(logging.FieldDevice, device))
				continue
			}
			if status.Writable() {
				return nil
			}
			m.logger.Info("inserted medium is not blank",
				logging.String(logging.FieldDevice, device),
				logging.String("status", status.String()))
		case err := <-errs:
			m.logger.Warn("netlink monitor error",
				logging.Error(err),
				logging.String(logging.FieldDevice, device))
		}
	}
}

func (m *Monitor) pollForBlankMedia(ctx context.Context, device string) error {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			status, err := m.inspector.CheckStatus(ctx, device)
			if err != nil {
				continue
			}
			if status.Writable() {
				return nil
			}
		}
	}
}

// mediaChangeMatcher matches udev events for optical media arriving:
// SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1, ACTION=change|add.
func mediaChangeMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

// deviceName extracts the /dev path from a uevent, deriving it from DEVPATH
// when DEVNAME is absent.
func deviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}
	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return "/dev/" + parts[len(parts)-1]
}
