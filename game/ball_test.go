package game

import "testing"

func TestBallSingleCollision(t *testing.T) {
	cfg := testPhys()
	b := &Ball{Pos: V(50, 30)}
	p := &Player{Pos: V(50, 35)}
	if n := len(b.Hits([]*Player{p}, cfg)); n != 1 {
		t.Fatalf("expected 1 hit, got %d", n)
	}

	b.Update(testDT, []*Player{p}, cfg)
	if b.Vel.Y != cfg.PlayerBallBounceY {
		t.Errorf("expected kick vy %f, got %f", cfg.PlayerBallBounceY, b.Vel.Y)
	}
	if b.Vel.X != 0 {
		t.Errorf("no horizontal offset should give vx 0, got %f", b.Vel.X)
	}
}

func TestBallNoCollision(t *testing.T) {
	cfg := testPhys()
	b := &Ball{Pos: V(50, 60)}
	p := &Player{Pos: V(50, 35)}
	if n := len(b.Hits([]*Player{p}, cfg)); n != 0 {
		t.Fatalf("expected no hits, got %d", n)
	}

	b.Update(testDT, []*Player{p}, cfg)
	if want := -cfg.Gravity * testDT; b.Vel.Y != want {
		t.Errorf("expected free fall vy %f, got %f", want, b.Vel.Y)
	}
}

func TestBallKickDirection(t *testing.T) {
	cfg := testPhys()
	b := &Ball{Pos: V(60, 30)}
	p := &Player{Pos: V(50, 30), Vel: V(100, 0)}
	b.Update(testDT, []*Player{p}, cfg)
	want := (100 + cfg.KickVel) * 10 / (cfg.PlayerRadius + cfg.BallRadius) * cfg.PlayerBallCoupling
	if !almostEqual(b.Vel.X, want) {
		t.Errorf("expected vx %f, got %f", want, b.Vel.X)
	}
}

func TestBallPinch(t *testing.T) {
	cfg := testPhys()
	b := &Ball{Pos: V(100, 30), Vel: V(40, -40)}
	players := []*Player{{Pos: V(90, 30)}, {Pos: V(110, 30)}}
	b.Update(testDT, players, cfg)
	if b.Vel != V(0, cfg.BallCollideBounceVel) {
		t.Errorf("expected pinch bounce (0,%f), got %+v", cfg.BallCollideBounceVel, b.Vel)
	}
}

func TestBallFloorBounce(t *testing.T) {
	cfg := testPhys()
	b := &Ball{Pos: V(200, cfg.BallRadius+1), Vel: V(0, -300)}
	b.Update(testDT, nil, cfg)
	if b.Pos.Y != cfg.BallRadius+eps {
		t.Errorf("expected ball on the floor, got y=%f", b.Pos.Y)
	}
	if b.Vel.Y <= 0 {
		t.Errorf("expected upward bounce, got vy=%f", b.Vel.Y)
	}
}

func TestCrossbarFiresOncePerCrossing(t *testing.T) {
	cfg := testPhys()
	bar := cfg.GoalHeight + cfg.BallRadius

	b := &Ball{Pos: V(20, bar+1), Vel: V(0, -300)}
	b.Update(testDT, nil, cfg)
	if b.Pos.Y != bar+eps {
		t.Fatalf("expected ball placed on the crossbar, got y=%f", b.Pos.Y)
	}
	if b.Vel.X != crossbarKickVel {
		t.Errorf("expected escape kick %v, got %f", crossbarKickVel, b.Vel.X)
	}
	if b.Vel.Y <= 0 {
		t.Errorf("expected upward deflection, got vy=%f", b.Vel.Y)
	}

	// A ball already under the bar falls freely.
	b = &Ball{Pos: V(20, bar-40)}
	for i := 0; i < 5; i++ {
		b.Update(testDT, nil, cfg)
		if b.Vel.X != 0 {
			t.Fatalf("tick %d: resting below the bar must not trigger a deflection", i)
		}
		if b.Pos.Y >= bar {
			t.Fatalf("tick %d: ball pushed above the bar", i)
		}
	}
}

func TestCrossbarLandingExactlyOnBar(t *testing.T) {
	cfg := testPhys()
	bar := cfg.GoalHeight + cfg.BallRadius
	b := &Ball{Pos: V(20, bar), Vel: V(0, -30)}
	if !b.crossedBar(testDT, cfg) {
		t.Error("arriving exactly at bar height counts as crossing")
	}
	b = &Ball{Pos: V(20, bar)}
	if b.crossedBar(testDT, cfg) {
		t.Error("a ball resting at bar height did not cross it")
	}
}

func TestCrossbarRightGoalKicksLeft(t *testing.T) {
	cfg := testPhys()
	bar := cfg.GoalHeight + cfg.BallRadius
	b := &Ball{Pos: V(cfg.Width-20, bar+1), Vel: V(0, -300)}
	b.Update(testDT, nil, cfg)
	if b.Vel.X != -crossbarKickVel {
		t.Errorf("expected kick toward the center, got vx=%f", b.Vel.X)
	}
}

func TestGoal(t *testing.T) {
	cfg := testPhys()
	cases := []struct {
		pos  Vec
		want int
	}{
		{V(12, 20), 2},
		{V(cfg.Width-12, 20), 1},
		{V(230, 20), 0},
		{V(12, cfg.GoalHeight+cfg.BallRadius+1), 0},
	}
	for _, tc := range cases {
		b := &Ball{Pos: tc.pos}
		if got := b.Goal(cfg); got != tc.want {
			t.Errorf("ball at %+v: got side %d, want %d", tc.pos, got, tc.want)
		}
	}
}
