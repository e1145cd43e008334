// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package nasa

import "strings"

// Camera is one of Curiosity's cameras.
type Camera struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var curiosityCameras = []Camera{
	{ID: "FHAZ", Name: "Front Hazard Avoidance Camera"},
	{ID: "RHAZ", Name: "Rear Hazard Avoidance Camera"},
	{ID: "MAST", Name: "Mast Camera"},
	{ID: "CHEMCAM", Name: "Chemistry and Camera Complex"},
	{ID: "MAHLI", Name: "Mars Hand Lens Imager"},
	{ID: "MARDI", Name: "Mars Descent Imager"},
	{ID: "NAVCAM", Name: "Navigation Camera"},
}

// Cameras returns Curiosity's cameras. The slice is a copy.
func Cameras() []Camera {
	out := make([]Camera, len(curiosityCameras))
	copy(out, curiosityCameras)
	return out
}

// IsCamera reports whether id names a Curiosity camera, ignoring case.
func IsCamera(id string) bool {
	for _, c := range curiosityCameras {
		if strings.EqualFold(c.ID, id) {
			return true
		}
	}
	return false
}
