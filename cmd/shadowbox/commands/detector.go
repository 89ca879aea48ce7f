package commands

import (
	"log"

	"github.com/ayusman/shadowbox/internal/detector"
)

// openDetector creates the pose detector once for the whole process.
// Without the pose service every frame reads as "No Person".
func openDetector() detector.Detector {
	det, err := detector.New(cfg.DetectorConfig())
	if err != nil {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		return detector.NewMockDetector()
	}
	log.Println("Using MediaPipe pose detection")
	return det
}
