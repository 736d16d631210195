package standfx

// Region represents the AWS region the parameter store client targets.
type Region interface {
	// resolve returns the AWS region string using the environment.
	resolve(env Environment) string
}

// localRegion uses the AWS_REGION environment variable.
type localRegion struct{}

func (localRegion) resolve(env Environment) string {
	return env.AWSRegion
}

// LocalRegion returns a Region that uses AWS_REGION.
func LocalRegion() Region {
	return localRegion{}
}

// storeRegion uses AWSTANDING_REGION and falls back to AWS_REGION.
type storeRegion struct{}

func (storeRegion) resolve(env Environment) string {
	if env.StoreRegion != "" {
		return env.StoreRegion
	}
	return env.AWSRegion
}

// StoreRegion returns a Region that uses AWSTANDING_REGION when set and AWS_REGION otherwise.
// This is the default.
func StoreRegion() Region {
	return storeRegion{}
}

// fixedRegion uses a hardcoded region string.
type fixedRegion string

func (r fixedRegion) resolve(_ Environment) string {
	return string(r)
}

// FixedRegion returns a Region that uses a specific region string.
func FixedRegion(region string) Region {
	return fixedRegion(region)
}
