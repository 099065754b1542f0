package session_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestListener_Download(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	s := sealedSession(t, f)
	transfer := mocks.NewMockTransfer(gomock.NewController(t))
	artifact := domain.MustArtifactCoordinates("org.example", "lib", "", "jar", "1.0")

	gomock.InOrder(
		f.descriptors.EXPECT().Invalidate("/repo/lib-1.0.jar.central.part"),
		f.logger.EXPECT().Info("Downloading org.example:lib:jar:1.0 from central"),
		f.reporter.EXPECT().Start(ctx, "org.example:lib:jar:1.0 (central)").Return(transfer),
		f.descriptors.EXPECT().Invalidate("/repo/lib-1.0.jar"),
		transfer.EXPECT().Done(nil),
		f.logger.EXPECT().Info("Downloaded org.example:lib:jar:1.0 from central"),
	)

	s.Notify(ctx, ports.RepositoryEvent{
		Type: ports.EventArtifactDownloading, Artifact: artifact, Repository: "central", File: "/repo/lib-1.0.jar.central.part",
	})
	s.Notify(ctx, ports.RepositoryEvent{
		Type: ports.EventArtifactDownloaded, Artifact: artifact, Repository: "central", File: "/repo/lib-1.0.jar",
	})
}

func TestListener_DownloadFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	artifact := domain.MustArtifactCoordinates("org.example", "lib", "", "jar", "1.0")

	tests := []struct {
		name string
		err  error
		warn bool
	}{
		{name: "not found is quiet", err: domain.ErrArtifactNotFound},
		{name: "transfer error warns", err: errors.New("connection reset"), warn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			s := sealedSession(t, f)
			transfer := mocks.NewMockTransfer(gomock.NewController(t))

			f.descriptors.EXPECT().Invalidate(gomock.Any()).AnyTimes()
			f.logger.EXPECT().Info(gomock.Any())
			f.reporter.EXPECT().Start(ctx, gomock.Any()).Return(transfer)
			transfer.EXPECT().Done(tt.err)
			if tt.warn {
				f.logger.EXPECT().Warn(gomock.Any())
			}

			s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactDownloading, Artifact: artifact, Repository: "r", File: "/part"})
			s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactDownloaded, Artifact: artifact, Repository: "r", File: "/file", Err: tt.err})
		})
	}
}

func TestListener_ResolvedLocally(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	s := sealedSession(t, f)
	transfer := mocks.NewMockTransfer(gomock.NewController(t))
	artifact := domain.MustArtifactCoordinates("org.example", "lib", "", "jar", "1.0")

	f.descriptors.EXPECT().Invalidate("/repo/lib-1.0.jar")
	f.reporter.EXPECT().Start(ctx, "org.example:lib:jar:1.0").Return(transfer)
	transfer.EXPECT().Cached()

	s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactResolved, Artifact: artifact, File: "/repo/lib-1.0.jar"})
}

func TestListener_FileTouched(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := sealedSession(t, f)

	f.descriptors.EXPECT().Invalidate("/repo/org/example/lib/maven-metadata-central.xml")

	s.Notify(context.Background(), ports.RepositoryEvent{Type: ports.EventFileTouched, File: "/repo/org/example/lib/maven-metadata-central.xml"})
	s.Notify(context.Background(), ports.RepositoryEvent{Type: ports.EventChecksumFailed})
}

func TestListener_DownloadedWithoutStart(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := sealedSession(t, f)
	artifact := domain.MustArtifactCoordinates("org.example", "lib", "", "jar", "1.0")

	f.logger.EXPECT().Info("Downloaded org.example:lib:jar:1.0 from central")

	s.Notify(context.Background(), ports.RepositoryEvent{Type: ports.EventArtifactDownloaded, Artifact: artifact, Repository: "central"})
}
