package services

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettifyLabel(t *testing.T) {
	assert.Equal(t, "Hot And Sour Soup", prettifyLabel("hot_and_sour_soup"))
	assert.Equal(t, "Pizza", prettifyLabel("pizza"))
	assert.Equal(t, "Baby Back Ribs", prettifyLabel("baby_back_ribs"))
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{2, 1, 0.1})

	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, probs[0], probs[1])
	assert.Greater(t, probs[1], probs[2])
}

func TestTopPredictionsRanksAndPrettifies(t *testing.T) {
	c := &ONNXClassifier{labels: []string{"apple_pie", "baby_back_ribs", "pizza", "sushi"}}

	preds := c.topPredictions([]float64{0.1, 0.05, 0.7, 0.15})

	require.Len(t, preds, 3)
	assert.Equal(t, "Pizza", preds[0].Label)
	assert.InDelta(t, 0.7, preds[0].Confidence, 1e-9)
	assert.Equal(t, "Sushi", preds[1].Label)
	assert.Equal(t, "Apple Pie", preds[2].Label)
}

func TestPreprocessShapeAndNormalization(t *testing.T) {
	// Uniform mid-gray image, larger than the crop on both sides.
	img := image.NewRGBA(image.Rect(0, 0, 300, 400))
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for y := 0; y < 400; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, gray)
		}
	}

	data := preprocess(img)

	require.Len(t, data, 3*inputSize*inputSize)

	plane := inputSize * inputSize
	want := [3]float64{
		(128.0/255.0 - float64(normMean[0])) / float64(normStd[0]),
		(128.0/255.0 - float64(normMean[1])) / float64(normStd[1]),
		(128.0/255.0 - float64(normMean[2])) / float64(normStd[2]),
	}
	for ch := 0; ch < 3; ch++ {
		center := ch*plane + (inputSize/2)*inputSize + inputSize/2
		assert.InDelta(t, want[ch], float64(data[center]), 0.02)
		require.False(t, math.IsNaN(float64(data[center])))
	}
}
