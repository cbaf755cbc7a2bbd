package game

import "testing"

func TestTrainingPreviewUntilFlush(t *testing.T) {
	tr := NewTraining(DefaultTrainingConfig())
	outs := tr.Outputs(1)
	if len(outs) != 1 {
		t.Fatalf("expected a single preview, got %d outputs", len(outs))
	}
	if _, ok := outs[0].(Preview); !ok {
		t.Fatalf("expected Preview, got %T", outs[0])
	}

	tr.Flush()
	tr.Update(testDT)
	if n := len(tr.Outputs(1)); n != 0 {
		t.Errorf("expected no outputs after flush, got %d", n)
	}
	if tr.Ended() {
		t.Error("training never ends")
	}
}

func TestTrainingFrame(t *testing.T) {
	tr := NewTraining(DefaultTrainingConfig())
	f := tr.Frame(1)
	if len(f.Players) != 2 {
		t.Fatalf("expected 2 player slots, got %d", len(f.Players))
	}
	if f.Players[0] != V(30, 20) || f.Players[1] != offstage {
		t.Errorf("unexpected training frame %+v", f.Players)
	}
	if f.Ball != V(230, 150) {
		t.Errorf("expected ball at spawn, got %+v", f.Ball)
	}
}

func TestTrainingGoalResets(t *testing.T) {
	tr := NewTraining(DefaultTrainingConfig())
	tr.Player.Pos = V(200, 50)
	tr.Ball.Pos = V(12, 20)
	tr.Update(testDT)
	if tr.Ball.Pos != V(230, 150) {
		t.Errorf("expected ball back at spawn, got %+v", tr.Ball.Pos)
	}
	if tr.Player.Pos != V(30, 20) {
		t.Errorf("expected player back at spawn, got %+v", tr.Player.Pos)
	}
	if n := len(tr.Outputs(1)); n != 1 {
		t.Errorf("a training goal emits nothing, got %d outputs", n)
	}
}

func TestTrainingKeys(t *testing.T) {
	tr := NewTraining(DefaultTrainingConfig())
	tr.Enqueue(KeyEvent{Slot: 1, Key: KeyRight, Press: Pressed})
	tr.Update(testDT)
	if !tr.Player.Keys.Held[KeyRight] {
		t.Fatal("expected Right held")
	}
	if tr.Player.Vel.X <= 0 {
		t.Errorf("expected rightward acceleration, got vx=%f", tr.Player.Vel.X)
	}
}
