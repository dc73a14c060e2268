package main

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lidscene/choreo"
	"github.com/milk9111/lidscene/page"
)

func TestStartAddress(t *testing.T) {
	cases := []struct {
		name string
		flag string
		exit bool
		want string
	}{
		{"default", "", false, "landing"},
		{"exit flag", "", true, "landing?exit=true"},
		{"address flag", "interactive", false, "interactive"},
		{"address keeps query", "landing?exit=true", false, "landing?exit=true"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := startAddress(page.NewStore(nil), c.flag, c.exit)
			if err != nil {
				t.Fatalf("startAddress: %v", err)
			}
			if got.String() != c.want {
				t.Fatalf("got %s, want %s", got, c.want)
			}
		})
	}
}

func TestStartAddressRejectsEmptyPage(t *testing.T) {
	if _, err := startAddress(page.NewStore(nil), "?exit=true", false); err == nil {
		t.Fatalf("expected an error for an address without a page")
	}
}

func TestReturnAddressRequestsExit(t *testing.T) {
	if returnAddress.Page != page.Landing || !returnAddress.Flag(page.ExitParam) {
		t.Fatalf("return address = %s", returnAddress)
	}
}

func TestInputMessages(t *testing.T) {
	in := &Input{CursorX: 10, CursorY: 20, Moved: true, ActivatePressed: true}
	msgs := in.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if m, ok := msgs[0].(choreo.PointerMoved); !ok || m.X != 10 || m.Y != 20 {
		t.Fatalf("first message = %#v", msgs[0])
	}
	if _, ok := msgs[1].(choreo.ActivateRequested); !ok {
		t.Fatalf("second message = %#v", msgs[1])
	}

	if msgs := (&Input{}).Messages(); len(msgs) != 0 {
		t.Fatalf("idle input produced %v", msgs)
	}
}

func TestPoseYAML(t *testing.T) {
	out, err := poseYAML(choreo.Pose{Position: mgl64.Vec3{0, 15, 40}, LookAt: mgl64.Vec3{0, 0, 0}})
	if err != nil {
		t.Fatalf("poseYAML: %v", err)
	}
	if !strings.Contains(out, "position:") || !strings.Contains(out, "look_at:") || !strings.Contains(out, "15") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
}
