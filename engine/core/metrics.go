package core

import "sync"

const frameTimeWindow = 30

// metricsState tracks a rolling frame-time average and a once-a-second
// FPS figure for the main loop.
type metricsState struct {
	frameCounter    int
	frameTimes      [frameTimeWindow]float64
	frameTimeAvg    float64
	frames          int32
	accumulatedMS   float64
	framesPerSecond float64
}

var onceMetrics sync.Once
var metrics *metricsState

func MetricsInitialize() {
	onceMetrics.Do(func() {
		metrics = &metricsState{}
	})
}

// MetricsUpdate folds one frame into the counters. frameElapsed is in
// seconds.
func MetricsUpdate(frameElapsed float64) {
	frameMS := frameElapsed * 1000.0

	metrics.frameTimes[metrics.frameCounter] = frameMS
	if metrics.frameCounter == frameTimeWindow-1 {
		sum := 0.0
		for i := 0; i < frameTimeWindow; i++ {
			sum += metrics.frameTimes[i]
		}
		metrics.frameTimeAvg = sum / frameTimeWindow
	}
	metrics.frameCounter = (metrics.frameCounter + 1) % frameTimeWindow

	metrics.accumulatedMS += frameMS
	if metrics.accumulatedMS > 1000 {
		metrics.framesPerSecond = float64(metrics.frames)
		metrics.accumulatedMS -= 1000
		metrics.frames = 0
	}
	metrics.frames++
}

func MetricsFPS() float64 {
	if metrics == nil {
		return 0
	}
	return metrics.framesPerSecond
}

func MetricsFrameTime() float64 {
	if metrics == nil {
		return 0
	}
	return metrics.frameTimeAvg
}

// MetricsFrame returns FPS and average frame time in one call.
func MetricsFrame() (float64, float64) {
	return MetricsFPS(), MetricsFrameTime()
}
