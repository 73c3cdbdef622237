package wind_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWind(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Wind Suite")
}
