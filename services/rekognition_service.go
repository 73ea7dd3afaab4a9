package services

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/Aman5012/Food-Nutrition-Analyzer/models"
)

// RekognitionClassifier is the hosted alternative to the local ONNX model,
// selected with CLASSIFIER_BACKEND=rekognition.
type RekognitionClassifier struct {
	client *rekognition.Client
}

func NewRekognitionClassifier() (*RekognitionClassifier, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionClassifier{client: rekognition.NewFromConfig(cfg)}, nil
}

// Classify returns the top labels Rekognition detects, confidences scaled
// to [0,1] to match the local model's output.
func (r *RekognitionClassifier) Classify(imageData []byte) ([]models.Prediction, error) {
	out, err := r.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:     &types.Image{Bytes: imageData},
		MaxLabels: aws.Int32(topK),
	})
	if err != nil {
		return nil, err
	}

	preds := make([]models.Prediction, 0, len(out.Labels))
	for _, l := range out.Labels {
		preds = append(preds, models.Prediction{
			Label:      aws.ToString(l.Name),
			Confidence: float64(aws.ToFloat32(l.Confidence)) / 100,
		})
	}
	sort.Slice(preds, func(a, b int) bool { return preds[a].Confidence > preds[b].Confidence })
	if len(preds) == 0 {
		return nil, errors.New("no labels detected")
	}
	if len(preds) > topK {
		preds = preds[:topK]
	}
	return preds, nil
}
