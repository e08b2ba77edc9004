// Package audio decodes files into PCM packets and plays PCM on an output device.
package audio

import (
	"encoding/binary"
	"math"

	"github.com/lyra-cli/lyra/player"
)

// Output is the PCM layout every packet is converted to.
func Output(sampleRate int) player.Format {
	return player.Format{SampleRate: sampleRate, Channels: 2, BitDepth: 16}
}

// encodePCM16 converts stereo float samples to interleaved signed 16-bit little-endian bytes.
func encodePCM16(samples [][2]float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(toInt16(s[0])))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(toInt16(s[1])))
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
