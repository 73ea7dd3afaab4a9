package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	ort "github.com/yalue/onnxruntime_go"
	"golang.org/x/image/draw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Aman5012/Food-Nutrition-Analyzer/models"
)

// Classifier turns an image into ranked food predictions, highest
// confidence first.
type Classifier interface {
	Classify(imageData []byte) ([]models.Prediction, error)
}

const (
	resizeEdge = 256
	inputSize  = 224
	topK       = 3
)

// ImageNet normalization the food model was trained with.
var (
	normMean = [3]float32{0.485, 0.456, 0.406}
	normStd  = [3]float32{0.229, 0.224, 0.225}
)

var titleCaser = cases.Title(language.English)

// ONNXClassifier runs the exported EfficientNet-B0 food model through the
// ONNX Runtime. Label list and session are loaded once and shared across
// requests.
type ONNXClassifier struct {
	labels  []string
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
}

// NewONNXClassifier loads the class name list and the model weights. Both
// are required; the caller is expected to treat an error as fatal.
func NewONNXClassifier(classNamesPath, modelPath string) (*ONNXClassifier, error) {
	raw, err := os.ReadFile(classNamesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read class names: %w", err)
	}
	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, fmt.Errorf("failed to parse class names: %w", err)
	}
	if len(labels) == 0 {
		return nil, errors.New("class names file is empty")
	}

	if lib := os.Getenv("ONNX_LIB_PATH"); lib != "" {
		ort.SetSharedLibraryPath(lib)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath, []string{"input"}, []string{"output"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", modelPath, err)
	}

	return &ONNXClassifier{labels: labels, session: session}, nil
}

// Classify decodes the image, runs inference and returns the top three
// predictions by softmax probability.
func (c *ONNXClassifier) Classify(imageData []byte) ([]models.Prediction, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	input, err := ort.NewTensor(ort.NewShape(1, 3, inputSize, inputSize), preprocess(img))
	if err != nil {
		return nil, fmt.Errorf("failed to build input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(c.labels))))
	if err != nil {
		return nil, fmt.Errorf("failed to build output tensor: %w", err)
	}
	defer output.Destroy()

	// The session is not documented as goroutine-safe; one inference at a time.
	c.mu.Lock()
	err = c.session.Run([]ort.Value{input}, []ort.Value{output})
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	return c.topPredictions(softmax(output.GetData())), nil
}

func (c *ONNXClassifier) topPredictions(probs []float64) []models.Prediction {
	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return probs[idx[a]] > probs[idx[b]] })

	n := topK
	if len(idx) < n {
		n = len(idx)
	}
	preds := make([]models.Prediction, 0, n)
	for _, i := range idx[:n] {
		preds = append(preds, models.Prediction{
			Label:      prettifyLabel(c.labels[i]),
			Confidence: probs[i],
		})
	}
	return preds
}

// preprocess scales the shortest side to 256, crops the center 224x224 and
// returns a normalized NCHW float32 tensor.
func preprocess(src image.Image) []float32 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := float64(resizeEdge) / float64(min(w, h))
	sw := int(math.Round(float64(w) * scale))
	sh := int(math.Round(float64(h) * scale))
	resized := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.CatmullRom.Scale(resized, resized.Bounds(), src, b, draw.Src, nil)

	x0 := (sw - inputSize) / 2
	y0 := (sh - inputSize) / 2

	plane := inputSize * inputSize
	data := make([]float32, 3*plane)
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			r, g, bl, _ := resized.At(x0+x, y0+y).RGBA()
			i := y*inputSize + x
			data[i] = (float32(r)/65535 - normMean[0]) / normStd[0]
			data[plane+i] = (float32(g)/65535 - normMean[1]) / normStd[1]
			data[2*plane+i] = (float32(bl)/65535 - normMean[2]) / normStd[2]
		}
	}
	return data
}

func softmax(logits []float32) []float64 {
	maxv := float64(logits[0])
	for _, v := range logits[1:] {
		if float64(v) > maxv {
			maxv = float64(v)
		}
	}
	exps := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		exps[i] = math.Exp(float64(v) - maxv)
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}

// prettifyLabel turns a model class name like "hot_and_sour_soup" into the
// display form "Hot And Sour Soup", which is also the cache key.
func prettifyLabel(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}
