package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/akyro/liftlog/internal/models"
	"gopkg.in/yaml.v3"
)

// recordFormat tags every record so unrelated YAML is never mistaken for a
// workout.
const recordFormat = "liftlog.workout/v1"

// record is the on-disk shape of one workout. Pointer fields distinguish a
// missing key from a zero value.
type record struct {
	Format    string           `yaml:"format"`
	Name      string           `yaml:"name"`
	Exercises []exerciseRecord `yaml:"exercises"`
}

type exerciseRecord struct {
	Name        *string  `yaml:"name"`
	Sets        *int     `yaml:"sets"`
	Reps        *int     `yaml:"reps"`
	Weight      *float64 `yaml:"weight"`
	MuscleGroup *string  `yaml:"muscle_group"`
}

// EncodeRecord serializes a workout. The output always lists exercises,
// even when there are none.
func EncodeRecord(w *models.Workout) ([]byte, error) {
	rec := record{
		Format:    recordFormat,
		Name:      w.Name,
		Exercises: make([]exerciseRecord, 0, len(w.Exercises)),
	}
	for _, e := range w.Exercises {
		e := e
		rec.Exercises = append(rec.Exercises, exerciseRecord{
			Name:        &e.Name,
			Sets:        &e.Sets,
			Reps:        &e.Reps,
			Weight:      &e.Weight,
			MuscleGroup: &e.MuscleGroup,
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("encoding workout %q: %w", w.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding workout %q: %w", w.Name, err)
	}
	return buf.Bytes(), nil
}

// DecodeRecord parses a record and validates the result. Any problem is
// reported as an error; a workout is returned only when fully valid.
func DecodeRecord(data []byte) (*models.Workout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rec record
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty record")
		}
		return nil, fmt.Errorf("parsing record: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after record")
	}

	if rec.Format != recordFormat {
		return nil, fmt.Errorf("unsupported record format %q", rec.Format)
	}

	w := models.NewWorkout(rec.Name)
	for i, er := range rec.Exercises {
		if er.Name == nil || er.Sets == nil || er.Reps == nil || er.Weight == nil || er.MuscleGroup == nil {
			return nil, fmt.Errorf("exercise %d: missing field", i+1)
		}
		w.AddExercise(models.NewExercise(*er.Name, *er.Sets, *er.Reps, *er.Weight, *er.MuscleGroup))
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// recordName extracts the workout name from a record without validating the
// exercises, so a damaged record is still listed and reported on Load.
func recordName(data []byte) (string, error) {
	var head struct {
		Format string `yaml:"format"`
		Name   string `yaml:"name"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return "", fmt.Errorf("parsing record: %w", err)
	}
	if head.Format != recordFormat {
		return "", fmt.Errorf("unsupported record format %q", head.Format)
	}
	if head.Name == "" {
		return "", errors.New("record has no name")
	}
	return head.Name, nil
}
