package knn

import "errors"

var (
	// ErrInvalidSample indicates source data that cannot be represented as
	// a sample: an unrecognized species or an unparseable measurement.
	ErrInvalidSample = errors.New("invalid sample")
	// ErrInvalidK indicates a k outside the range [1, len(training)].
	ErrInvalidK = errors.New("k must be positive and not exceed the training set size")
	// ErrNoTraining indicates classification was attempted with no training data.
	ErrNoTraining = errors.New("training set is empty")
	// ErrNoTesting indicates evaluation was attempted with no testing data.
	ErrNoTesting = errors.New("testing set is empty")
	// ErrAlreadyClassified indicates a testing sample was assigned a second result.
	ErrAlreadyClassified = errors.New("sample already classified")
	// ErrInvalidSplit indicates an unusable partition policy parameter.
	ErrInvalidSplit = errors.New("invalid split policy")
)
