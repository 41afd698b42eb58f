package allocsensor

import "testing"

func TestSensorObservesAllocationsDuringRecordingWindow(t *testing.T) {
	s := New()

	s.StartRecording()

	leaks := make([][]byte, 0, 8)
	for i := 0; i < 6; i++ {
		leaks = append(leaks, make([]byte, 64))
	}

	s.StopRecording()

	obs := s.GetObservations()
	if obs.AllocBlocks == 0 {
		t.Fatalf("expected at least one allocation to be observed")
	}

	_ = leaks
}
