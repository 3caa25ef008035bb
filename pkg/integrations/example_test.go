package integrations_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/bumpkit/pkg/integrations"
)

func ExampleCheckStatus() {
	fmt.Println(integrations.CheckStatus(200))
	fmt.Println(errors.Is(integrations.CheckStatus(401), integrations.ErrUnauthorized))
	fmt.Println(errors.Is(integrations.CheckStatus(404), integrations.ErrNotFound))
	fmt.Println(integrations.CheckStatus(503))
	// Output:
	// <nil>
	// true
	// true
	// network error: status 503
}
