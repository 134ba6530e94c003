package media

import (
	"context"

	"github.com/godbus/dbus/v5"
)

const (
	mprisPath        = "/org/mpris/MediaPlayer2"
	mprisBusPrefix   = "org.mpris.MediaPlayer2."
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
)

// Bus defines the D-Bus operations the MPRIS provider needs.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/bus_mock.go -package=mocks github.com/jfmyers9/mediactl/internal/media Bus
type Bus interface {
	// ListNames returns all names on the bus
	ListNames(ctx context.Context) ([]string, error)

	// PlayerProperties returns every property of the
	// org.mpris.MediaPlayer2.Player interface of the given bus name
	PlayerProperties(ctx context.Context, dest string) (map[string]dbus.Variant, error)

	// CallPlayer invokes a no-argument method of the
	// org.mpris.MediaPlayer2.Player interface (e.g. "PlayPause")
	CallPlayer(ctx context.Context, dest, method string) error

	// Close closes the D-Bus connection
	Close() error
}

// sessionBus is the real implementation using godbus
type sessionBus struct {
	conn *dbus.Conn
}

// dialSessionBus opens a private connection to the session bus
func dialSessionBus(ctx context.Context) (Bus, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &sessionBus{conn: conn}, nil
}

func (b *sessionBus) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := b.conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

func (b *sessionBus) PlayerProperties(ctx context.Context, dest string) (map[string]dbus.Variant, error) {
	var props map[string]dbus.Variant
	obj := b.conn.Object(dest, dbus.ObjectPath(mprisPath))
	err := obj.CallWithContext(ctx, "org.freedesktop.DBus.Properties.GetAll", 0, mprisPlayerIface).Store(&props)
	return props, err
}

func (b *sessionBus) CallPlayer(ctx context.Context, dest, method string) error {
	obj := b.conn.Object(dest, dbus.ObjectPath(mprisPath))
	return obj.CallWithContext(ctx, mprisPlayerIface+"."+method, 0).Err
}

func (b *sessionBus) Close() error {
	return b.conn.Close()
}
