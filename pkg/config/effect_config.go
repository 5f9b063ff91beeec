package config

import "time"

// 粒子效果常量
// 本文件定义悬停爆发效果的物理参数，这些值不对外开放配置

// Burst Configuration (爆发配置)
const (
	// BurstParticleCount 每次悬停进入时生成的粒子数量
	BurstParticleCount = 50

	// ParticleLifetime 粒子存活时长，超过后粒子被移除
	ParticleLifetime = 3000 * time.Millisecond

	// ParticleMinSize 粒子半径下限（像素，包含）
	ParticleMinSize = 2.0

	// ParticleSizeRange 粒子半径随机范围，半径落在 [MinSize, MinSize+SizeRange)
	ParticleSizeRange = 3.0

	// ParticleInitialSpeed 初始速度每个轴的随机幅度，速度落在 [-3, 3)
	ParticleInitialSpeed = 3.0
)

// Motion Configuration (运动配置)
const (
	// ParticleMaxSpeed 每个轴的速度上限（像素/帧）
	ParticleMaxSpeed = 4.0

	// ParticleDriftAmplitude 每帧叠加的均匀噪声幅度，噪声落在 [-0.1, 0.1)
	ParticleDriftAmplitude = 0.1

	// RepulsionRadius 指针排斥半径（像素），距离严格小于该值时生效
	RepulsionRadius = 100.0

	// RepulsionForce 每帧施加的排斥冲量大小
	RepulsionForce = 0.1
)

// Population Configuration (数量配置)
const (
	// DefaultMaxParticles 同时存活粒子数的默认上限
	// 超出时按创建顺序淘汰最旧的粒子
	DefaultMaxParticles = 1000
)
