package analysis_test

import (
	"io"
	"log"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/slabwave/internal/analysis"
)

func TestAnalysis(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analysis Suite")
}

func quietOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.Scan.Logger = log.New(io.Discard, "", 0)
	return opts
}
