package fx

import (
	"github.com/dealerhub/social-publisher/internal/repositories/post"
	"github.com/dealerhub/social-publisher/internal/repositories/product"
	"github.com/dealerhub/social-publisher/internal/repositories/snapshot"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
	snapshot.Module,
	product.Module,
)
