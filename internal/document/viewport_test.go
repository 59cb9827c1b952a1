package document

import (
	"math/rand"
	"testing"
)

func TestViewport_StartsFollowing(t *testing.T) {
	vp := NewViewport()
	vp.SetHeight(10)

	vp.Clamp(100)
	if !vp.Following() {
		t.Error("Fresh viewport should follow the bottom")
	}
	if vp.Scroll() != 90 {
		t.Errorf("Expected scroll 90, got %d", vp.Scroll())
	}
}

func TestViewport_FollowTracksGrowth(t *testing.T) {
	vp := NewViewport()
	vp.SetHeight(10)
	vp.JumpBottom(50)
	vp.Clamp(50)

	// Content grows while following: scroll chases the bottom.
	vp.Clamp(80)
	if vp.Scroll() != 70 {
		t.Errorf("Expected scroll 70 after growth, got %d", vp.Scroll())
	}
	if !vp.Following() {
		t.Error("Growth should not release follow mode")
	}
}

func TestViewport_ScrollUpReleasesFollow(t *testing.T) {
	vp := NewViewport()
	vp.SetHeight(10)
	vp.JumpBottom(100)
	vp.Clamp(100)

	vp.CursorUp(50)
	vp.Clamp(100)

	if vp.Following() {
		t.Error("Scrolling the cursor above the window should release follow")
	}

	// New content no longer moves the window.
	scroll := vp.Scroll()
	vp.Clamp(150)
	if vp.Scroll() != scroll {
		t.Errorf("Released viewport moved: %d -> %d", scroll, vp.Scroll())
	}
}

func TestViewport_JumpBottomRestoresFollow(t *testing.T) {
	vp := NewViewport()
	vp.SetHeight(10)
	vp.JumpTop()
	vp.Clamp(100)

	if vp.Following() {
		t.Error("JumpTop should release follow")
	}

	vp.JumpBottom(100)
	vp.Clamp(100)
	if !vp.Following() {
		t.Error("JumpBottom should restore follow")
	}
	if vp.Cursor() != 99 {
		t.Errorf("Expected cursor 99, got %d", vp.Cursor())
	}
}

func TestViewport_CursorClampedToContent(t *testing.T) {
	vp := NewViewport()
	vp.SetHeight(10)
	vp.CursorDown(1000)
	vp.Clamp(20)

	if vp.Cursor() != 19 {
		t.Errorf("Expected cursor clamped to 19, got %d", vp.Cursor())
	}

	// Content shrinks below the cursor.
	vp.Clamp(5)
	if vp.Cursor() != 4 {
		t.Errorf("Expected cursor clamped to 4, got %d", vp.Cursor())
	}

	vp.Clamp(0)
	if vp.Cursor() != 0 || vp.Scroll() != 0 {
		t.Errorf("Empty content should zero cursor and scroll, got %d/%d", vp.Cursor(), vp.Scroll())
	}
}

func TestViewport_WindowBounds(t *testing.T) {
	vp := NewViewport()
	vp.SetHeight(10)
	vp.JumpTop()
	vp.Clamp(5)

	start, end := vp.Window(5)
	if start != 0 || end != 5 {
		t.Errorf("Expected window [0,5), got [%d,%d)", start, end)
	}

	start, end = vp.Window(0)
	if start != 0 || end != 0 {
		t.Errorf("Expected empty window, got [%d,%d)", start, end)
	}
}

func TestViewport_CursorAlwaysVisibleAfterClamp(t *testing.T) {
	vp := NewViewport()
	vp.SetHeight(8)

	rng := rand.New(rand.NewSource(42))
	total := 200

	for i := 0; i < 1000; i++ {
		switch rng.Intn(7) {
		case 0:
			vp.CursorDown(1)
		case 1:
			vp.CursorUp(1)
		case 2:
			vp.CursorDown(rng.Intn(40))
		case 3:
			vp.CursorUp(rng.Intn(40))
		case 4:
			vp.JumpTop()
		case 5:
			vp.JumpBottom(total)
		case 6:
			total = 1 + rng.Intn(300)
		}
		vp.Clamp(total)

		if vp.Cursor() < 0 || vp.Cursor() >= total {
			t.Fatalf("Cursor %d out of bounds for total %d (iteration %d)", vp.Cursor(), total, i)
		}
		if vp.Cursor() < vp.Scroll() || vp.Cursor() >= vp.Scroll()+vp.Height() {
			t.Fatalf("Cursor %d outside window [%d,%d) (iteration %d)", vp.Cursor(), vp.Scroll(), vp.Scroll()+vp.Height(), i)
		}
		maxScroll := total - vp.Height()
		if maxScroll < 0 {
			maxScroll = 0
		}
		if vp.Scroll() < 0 || vp.Scroll() > maxScroll {
			t.Fatalf("Scroll %d out of range [0,%d] (iteration %d)", vp.Scroll(), maxScroll, i)
		}
	}
}

func TestViewport_ResetOnConversationSwitch(t *testing.T) {
	vp := NewViewport()
	vp.SetHeight(10)
	vp.CursorDown(30)
	vp.Clamp(100)

	vp.Reset()
	if vp.Cursor() != 0 || vp.Scroll() != 0 {
		t.Error("Reset should zero cursor and scroll")
	}
	if !vp.Following() {
		t.Error("Reset should restore follow mode")
	}
}
