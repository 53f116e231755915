package utils_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/docstore/utils"
)

type errorsSuite struct {
	suite.Suite
}

// TestErrorWrapFunctions tests all error wrap functions with both nil and non-nil errors
func (s *errorsSuite) TestErrorWrapFunctions() {
	testError := errors.New("test error")

	testCases := []struct {
		name        string
		wrapFunc    func(error) error
		expectedMsg string
	}{
		{"WrapGetError", utils.WrapGetError, "get error: test error"},
		{"WrapListError", utils.WrapListError, "list error: test error"},
		{"WrapCreateError", utils.WrapCreateError, "create error: test error"},
		{"WrapSetError", utils.WrapSetError, "set error: test error"},
		{"WrapUpdateError", utils.WrapUpdateError, "update error: test error"},
		{"WrapDeleteError", utils.WrapDeleteError, "delete error: test error"},
		{"WrapExistsError", utils.WrapExistsError, "exists error: test error"},
		{"WrapUploadError", utils.WrapUploadError, "upload error: test error"},
		{"WrapDownloadError", utils.WrapDownloadError, "download error: test error"},
		{"WrapCacheError", utils.WrapCacheError, "cache error: test error"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.wrapFunc(testError)
			s.Require().EqualError(err, tc.expectedMsg, "error message should be properly wrapped")
			s.Require().ErrorIs(err, testError, "should be able to unwrap to original error")
		})

		s.Run(tc.name+"_WithNil", func() {
			result := tc.wrapFunc(nil)
			s.Require().NoError(result, "should return nil when given a nil error")
		})
	}
}

func TestErrors(t *testing.T) {
	suite.Run(t, new(errorsSuite))
}
