// Package testbase is the shared fixture layer for bedrock rule tests.
//
// Rule suites embed Suite and ask the harness for a container; the harness
// memoizes one fully built container per distinct configuration combination
// for the whole test process, so expensive setup (working-directory
// provisioning, bootstrap actions) runs once no matter how many suites or
// test methods request it.
//
//	type MySuite struct {
//		testbase.Suite
//	}
//
//	func (MySuite) AdditionalConfigFiles() []string {
//		return []string{"testdata/my-rule.yaml"}
//	}
//
//	func TestMyRule(t *testing.T) {
//		c := testbase.GetContainer(t, MySuite{})
//		...
//	}
//
// Containers are cached by a fingerprint of the ordered effective source
// list: the suite's contributed files, the base configuration, and, when the
// static-reflection flag is set, the static-reflection variant. Flipping the
// flag between calls therefore routes to a different cache entry.
package testbase
