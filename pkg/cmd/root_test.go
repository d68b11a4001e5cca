package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/lens"
	"github.com/aquasecurity/polaris-lens/pkg/report"
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	. "github.com/onsi/gomega/ghttp"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	clocktesting "k8s.io/utils/clock/testing"
)

var _ = Describe("polaris-lens", func() {

	var server *Server
	var fixture []byte
	var stdout, stderr *bytes.Buffer

	execute := func(args ...string) error {
		args = append([]string{lens.Executable, "--no-persist", "--dashboard-url", server.URL()}, args...)
		return NewRootCmd(lens.BuildInfo{Version: "0.1.0", Commit: "abc", Date: "today"}, args, stdout, stderr).Execute()
	}

	BeforeEach(func() {
		var err error
		fixture, err = os.ReadFile("test_fixture/results.json")
		Expect(err).ToNot(HaveOccurred())
		server = NewServer()
		server.SetAllowUnhandledRequests(true)
		server.RouteToHandler("GET", "/results.json", RespondWith(http.StatusOK, fixture))
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
	})

	AfterEach(func() {
		server.Close()
	})

	It("should print version", func() {
		Expect(execute("version")).To(Succeed())
		Expect(stdout.String()).To(Equal("polaris-lens Version: {Version:0.1.0 Commit:abc Date:today}\n"))
	})

	It("should print overview as JSON", func() {
		Expect(execute("overview", "-o", "json")).To(Succeed())

		var overview report.Overview
		Expect(json.Unmarshal(stdout.Bytes(), &overview)).To(Succeed())
		Expect(overview.DisplayName).To(Equal("kind-kind"))
		Expect(overview.Score).To(Equal(43))
		Expect(overview.Counts.Total).To(Equal(7))
		Expect(overview.TopIssues).To(HaveLen(2))
		Expect(overview.TopIssues[0].ID).To(Equal("runAsPrivileged"))
	})

	It("should print namespaces", func() {
		Expect(execute("namespaces", "-o", "json")).To(Succeed())

		var rows report.NamespaceList
		Expect(json.Unmarshal(stdout.Bytes(), &rows)).To(Succeed())
		namespaces := make(map[string]int)
		for _, row := range rows {
			namespaces[row.Namespace] = row.Score
		}
		Expect(cmp.Diff(map[string]int{"cache": 100, "web": 20}, namespaces)).To(BeEmpty())
	})

	It("should print namespace detail as table", func() {
		Expect(execute("namespace", "web")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring("NAMESPACE:"))
		Expect(stdout.String()).To(ContainSubstring("nginx"))
		Expect(stdout.String()).To(ContainSubstring("Deployment"))
	})

	It("should print workload audit", func() {
		Expect(execute("workload", "deploy/nginx", "-n", "web", "-o", "yaml")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring("id: runAsPrivileged"))
		Expect(stdout.String()).To(ContainSubstring("id: cpuLimitsMissing"))
		Expect(stdout.String()).ToNot(ContainSubstring("priorityClassNotSet"))
	})

	It("should reject unsupported workload kind", func() {
		err := execute("workload", "pod/nginx", "-n", "web")
		Expect(err).To(MatchError("Pod/nginx: unsupported workload kind"))
	})

	It("should report workload missing from audit", func() {
		err := execute("workload", "sts/nginx", "-n", "web")
		Expect(err).To(MatchError("StatefulSet/nginx in namespace web: workload not found in Polaris audit results"))
	})

	It("should classify fetch errors", func() {
		server.RouteToHandler("GET", "/results.json", RespondWith(http.StatusNotFound, ""))
		err := execute("overview")
		Expect(err).To(MatchError("Polaris dashboard not found (404). Verify the URL is correct."))
	})

	It("should reject unknown output format", func() {
		err := execute("overview", "-o", "wide")
		Expect(err).To(MatchError(`invalid output format "wide", allowed formats are: table,json,yaml`))
	})

	Describe("config", func() {
		It("should print settings", func() {
			Expect(execute("config", "-o", "json")).To(Succeed())
			Expect(stdout.String()).To(MatchJSON(`{"refreshInterval": 300, "dashboardURL": "` + server.URL() + `"}`))
		})

		It("should set refresh interval", func() {
			Expect(execute("config", "set-interval", "600")).To(Succeed())
			Expect(stdout.String()).To(Equal("Refresh interval set to 600s\n"))
		})

		It("should reject invalid refresh interval", func() {
			err := execute("config", "set-interval", "ten")
			Expect(err).To(MatchError(`invalid refresh interval "ten": must be a number of seconds`))
		})

		It("should list interval options", func() {
			Expect(execute("config", "options")).To(Succeed())
			Expect(stdout.String()).To(ContainSubstring("5 minutes"))
			Expect(stdout.String()).To(ContainSubstring("1800"))
		})
	})

	Describe("test-connection", func() {
		It("should report success", func() {
			Expect(execute("test-connection", "-o", "json")).To(Succeed())
			Expect(stdout.String()).To(ContainSubstring("Connected successfully! Version: 1.0, Last audit: Wed, 01 May 2024 10:00:00 UTC"))
		})

		It("should report failure", func() {
			server.RouteToHandler("GET", "/results.json", RespondWith(http.StatusForbidden, ""))
			Expect(execute("test-connection")).To(MatchError(errConnectionFailed))
			Expect(stdout.String()).To(ContainSubstring("Connection failed: HTTP 403: Forbidden"))
		})
	})

	Describe("watch", func() {
		It("should print the score until cancelled", func() {
			out := gbytes.NewBuffer()
			env := &environment{
				cf:           genericclioptions.NewConfigFlags(true),
				clock:        clocktesting.NewFakeClock(time.Now()),
				output:       report.FormatTable,
				dashboardURL: server.URL(),
				noPersist:    true,
			}
			env.config.HTTPTimeout = 5 * time.Second
			env.config.SettingsPollInterval = time.Second

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error)
			go func() {
				done <- watch(ctx, env, "", out)
			}()

			Eventually(out).Should(gbytes.Say("Loading Polaris audit data..."))
			Eventually(out).Should(gbytes.Say(`Polaris cluster score: 43% \(#f44336\)`))
			contents := func() string { return string(out.Contents()) }
			Eventually(contents).Should(ContainSubstring("Audited namespace: cache"))
			Eventually(contents).Should(ContainSubstring("Audited namespace: web"))

			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})
	})
})
