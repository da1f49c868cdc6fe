package opik_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	serde "github.com/opikgo/serde"
)

func TestSchemas_ConcurrentUse(t *testing.T) {
	defer goleak.VerifyNone(t)

	data := generateTraceBatch(20, 1)
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(8)
	for i := 0; i < 32; i++ {
		eg.Go(func() error {
			v, err := serde.Unmarshal(ctx, schemas.TraceBatchWrite, data, serde.ParseOpt{CollectAll: i%2 == 0})
			if err != nil {
				return err
			}
			if len(v.Traces) != 20 {
				return fmt.Errorf("worker %d: got %d traces", i, len(v.Traces))
			}
			_, err = serde.Marshal(ctx, schemas.TraceBatchWrite, v)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	_, err := serde.Unmarshal(context.Background(), schemas.TraceBatchWrite, []byte(`{"traces":[{}]}`))
	assert.ErrorIs(t, err, serde.ErrMissingRequiredField)
}
